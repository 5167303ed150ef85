// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mqx

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ecodeclub/storefront/internal/pkg/mqx"

// TracingMQ 发送消息时打点, 消费侧不动
type TracingMQ struct {
	mq.MQ
	tracer trace.Tracer
}

func NewTracingMQ(q mq.MQ) *TracingMQ {
	return NewTracingMQWithTracer(q, otel.GetTracerProvider().Tracer(instrumentationName))
}

func NewTracingMQWithTracer(q mq.MQ, tracer trace.Tracer) *TracingMQ {
	return &TracingMQ{MQ: q, tracer: tracer}
}

func (t *TracingMQ) Producer(topic string) (mq.Producer, error) {
	p, err := t.MQ.Producer(topic)
	if err != nil {
		return nil, err
	}
	return &tracingProducer{Producer: p, topic: topic, tracer: t.tracer}, nil
}

type tracingProducer struct {
	mq.Producer
	topic  string
	tracer trace.Tracer
}

func (t *tracingProducer) Produce(ctx context.Context, m *mq.Message) (*mq.ProducerResult, error) {
	ctx, span := t.start(ctx, m)
	defer span.End()
	res, err := t.Producer.Produce(ctx, m)
	finish(span, err)
	return res, err
}

func (t *tracingProducer) ProduceWithPartition(ctx context.Context, m *mq.Message, partition int) (*mq.ProducerResult, error) {
	ctx, span := t.start(ctx, m)
	defer span.End()
	span.SetAttributes(attribute.Int("messaging.partition", partition))
	res, err := t.Producer.ProduceWithPartition(ctx, m, partition)
	finish(span, err)
	return res, err
}

func (t *tracingProducer) start(ctx context.Context, m *mq.Message) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, t.topic+" publish", trace.WithSpanKind(trace.SpanKindProducer))
	attrs := []attribute.KeyValue{
		attribute.String("messaging.operation", "publish"),
		attribute.String("messaging.destination", t.topic),
	}
	if m != nil {
		attrs = append(attrs,
			attribute.String("messaging.message.key", string(m.Key)),
			attribute.Int("messaging.message.body.size", len(m.Value)))
	}
	span.SetAttributes(attrs...)
	return ctx, span
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
