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

package database

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	instrumentationName = "github.com/ecodeclub/storefront/internal/pkg/database"
	spanKey             = "tracing:span"
)

type registrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// GormTracingPlugin 给每一条 SQL 打一个 client span
type GormTracingPlugin struct {
	tracer trace.Tracer
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return NewGormTracingPluginWithTracer(otel.GetTracerProvider().Tracer(instrumentationName))
}

func NewGormTracingPluginWithTracer(tracer trace.Tracer) *GormTracingPlugin {
	return &GormTracingPlugin{tracer: tracer}
}

func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		p.register(cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), "query", "SELECT"),
		p.register(cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), "create", "INSERT"),
		p.register(cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), "update", "UPDATE"),
		p.register(cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), "delete", "DELETE"),
		p.register(cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw"), "raw", "RAW"),
	)
}

func (p *GormTracingPlugin) register(before, after registrar, name, op string) error {
	if err := before.Register("tracing:before_"+name, p.before(op)); err != nil {
		return err
	}
	return after.Register("tracing:after_"+name, p.after(op))
}

func (p *GormTracingPlugin) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		spanName := op
		if db.Statement.Table != "" {
			spanName = db.Statement.Table + " " + op
		}
		ctx, span := p.tracer.Start(db.Statement.Context, spanName, trace.WithSpanKind(trace.SpanKindClient))
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (p *GormTracingPlugin) after(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		val, ok := db.InstanceGet(spanKey)
		if !ok {
			return
		}
		span, ok := val.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		attrs := []attribute.KeyValue{
			attribute.String("db.system", db.Dialector.Name()),
			attribute.String("db.operation", op),
			attribute.String("db.statement", db.Statement.SQL.String()),
			attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
		}
		if db.Statement.Table != "" {
			attrs = append(attrs, attribute.String("db.table", db.Statement.Table))
		}
		span.SetAttributes(attrs...)
		// 查不到数据不算错误
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}
