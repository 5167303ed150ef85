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

package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/storefront/internal/payment/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	missingOrderResult = ginx.Result{
		Code: errs.MissingOrder.Code,
		Msg:  errs.MissingOrder.Msg,
	}
	missingSessionResult = ginx.Result{
		Code: errs.MissingSession.Code,
		Msg:  errs.MissingSession.Msg,
	}
	verifyFailedResult = ginx.Result{
		Code: errs.VerifyFailed.Code,
		Msg:  errs.VerifyFailed.Msg,
	}
	alreadyPaidResult = ginx.Result{
		Code: errs.AlreadyPaid.Code,
		Msg:  errs.AlreadyPaid.Msg,
	}
	stripeDisabledResult = ginx.Result{
		Code: errs.StripeDisabled.Code,
		Msg:  errs.StripeDisabled.Msg,
	}
	notPayableResult = ginx.Result{
		Code: errs.NotPayable.Code,
		Msg:  errs.NotPayable.Msg,
	}
)
