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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T, conn *sql.DB) *gorm.DB {
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestOrderGORMDAO_CreateOrder(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		items   []OrderItem
		wantID  int64
		wantErr error
	}{
		{
			name: "订单与订单项一起提交",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `orders` .*").WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectExec("INSERT INTO `order_items` .*").WillReturnResult(sqlmock.NewResult(1, 2))
				mock.ExpectCommit()
				return mockDB, mock
			},
			items: []OrderItem{
				{SKU: "TEE-001", Name: "Tee", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
				{SKU: "CAP-001", Name: "Cap", Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
			},
			wantID: 11,
		},
		{
			name: "订单项写入失败整体回滚",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `orders` .*").WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectExec("INSERT INTO `order_items` .*").WillReturnError(errors.New("mock db error"))
				mock.ExpectRollback()
				return mockDB, mock
			},
			items: []OrderItem{
				{SKU: "TEE-001", Name: "Tee", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock := tc.mock(t)
			d := NewOrderGORMDAO(newMockDB(t, mockDB))
			o, err := d.CreateOrder(context.Background(), Order{
				Status:      "pending",
				TotalAmount: decimal.RequireFromString("25.50"),
			}, tc.items)
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantID, o.Id)
			assert.True(t, o.Ctime > 0)
			assert.Equal(t, o.Ctime, o.Utime)
			for _, item := range tc.items {
				assert.Equal(t, tc.wantID, item.OrderId)
			}
		})
	}
}

func TestOrderGORMDAO_UpdateStatus(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "更新状态并追加历史",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO `order_status_histories` .*").
					WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectCommit()
				return mockDB, mock
			},
		},
		{
			name: "状态已被并发修改",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
				return mockDB, mock
			},
			wantErr: ErrStatusChanged,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock := tc.mock(t)
			d := NewOrderGORMDAO(newMockDB(t, mockDB))
			h, err := d.UpdateStatus(context.Background(), OrderStatusHistory{
				OrderId:    11,
				FromStatus: "paid",
				ToStatus:   "shipped",
				ChangedBy:  sql.NullInt64{Int64: 3, Valid: true},
			})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
			if err != nil {
				return
			}
			assert.Equal(t, int64(5), h.Id)
			assert.True(t, h.Ctime > 0)
		})
	}
}

func TestOrderGORMDAO_CreatePaymentAndUpdateStatus(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "支付流水与状态一起提交",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `payments` .*").WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO `order_status_histories` .*").
					WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectCommit()
				return mockDB, mock
			},
		},
		{
			name: "订单已被并发支付, 支付流水一起回滚",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `payments` .*").WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
				return mockDB, mock
			},
			wantErr: ErrStatusChanged,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock := tc.mock(t)
			d := NewOrderGORMDAO(newMockDB(t, mockDB))
			p, h, err := d.CreatePaymentAndUpdateStatus(context.Background(), Payment{
				OrderId:     11,
				Provider:    "stripe",
				Method:      "card",
				Status:      "successful",
				Amount:      decimal.RequireFromString("20.00"),
				ProviderRef: sql.NullString{String: "pi_123", Valid: true},
			}, OrderStatusHistory{OrderId: 11, FromStatus: "pending", ToStatus: "paid"})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
			if err != nil {
				return
			}
			assert.Equal(t, int64(9), p.Id)
			assert.Equal(t, int64(5), h.Id)
		})
	}
}

func TestOrderGORMDAO_UpdateDetails(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "待支付订单可以修改", affected: 1},
		{name: "订单已离开待支付", affected: 0, wantErr: ErrStatusChanged},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			d := NewOrderGORMDAO(newMockDB(t, mockDB))
			err = d.UpdateDetails(context.Background(), Order{
				Id:        11,
				BuyerName: "Alice",
				ShipCity:  "London",
			}, "pending")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderGORMDAO_FindOrderByID(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE id = \\?.*").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	d := NewOrderGORMDAO(newMockDB(t, mockDB))
	_, err = d.FindOrderByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
