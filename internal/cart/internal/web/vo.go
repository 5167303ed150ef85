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

type SKUReq struct {
	SKU string `json:"sku"`
}

type UpdateQtyReq struct {
	SKU string `json:"sku"`
	Qty int64  `json:"qty"`
}

type Bag struct {
	Rows     []Row  `json:"rows"`
	Subtotal string `json:"subtotal"`
	IsEmpty  bool   `json:"isEmpty"`
}

type Row struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
	Unit string `json:"unit"`
	Line string `json:"line"`
}
