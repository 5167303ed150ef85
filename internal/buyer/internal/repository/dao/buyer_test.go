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

func TestGORMBuyerDAO_Upsert(t *testing.T) {
	testCases := []struct {
		name      string
		buyer     Buyer
		mock      func(t *testing.T) *sql.DB
		wantBuyer Buyer
		wantErr   error
	}{
		{
			name:  "新邮箱插入成功",
			buyer: Buyer{Email: "alice@example.com", Name: "Alice"},
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `app_users` .*ON DUPLICATE KEY UPDATE.*`name`.*").
					WillReturnResult(sqlmock.NewResult(7, 1))
				rows := sqlmock.NewRows([]string{"id", "email", "name", "ctime", "utime"}).
					AddRow(7, "alice@example.com", "Alice", 100, 100)
				mock.ExpectQuery("SELECT \\* FROM `app_users` WHERE email = \\?.*").
					WillReturnRows(rows)
				return mockDB
			},
			wantBuyer: Buyer{Id: 7, Email: "alice@example.com", Name: "Alice", Ctime: 100, Utime: 100},
		},
		{
			name:  "已存在邮箱只更新名称",
			buyer: Buyer{Email: "alice@example.com", Name: "Alice Liddell"},
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `app_users` .*ON DUPLICATE KEY UPDATE.*").
					WillReturnResult(sqlmock.NewResult(0, 2))
				rows := sqlmock.NewRows([]string{"id", "email", "name", "ctime", "utime"}).
					AddRow(7, "alice@example.com", "Alice Liddell", 100, 200)
				mock.ExpectQuery("SELECT \\* FROM `app_users` WHERE email = \\?.*").
					WillReturnRows(rows)
				return mockDB
			},
			wantBuyer: Buyer{Id: 7, Email: "alice@example.com", Name: "Alice Liddell", Ctime: 100, Utime: 200},
		},
		{
			name:  "数据库错误",
			buyer: Buyer{Email: "alice@example.com"},
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `app_users` .*").
					WillReturnError(errors.New("数据库错误"))
				return mockDB
			},
			wantErr: errors.New("数据库错误"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewGORMBuyerDAO(newMockDB(t, tc.mock(t)))
			b, err := d.Upsert(context.Background(), tc.buyer)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantBuyer, b)
		})
	}
}

func TestGORMBuyerDAO_CreateIfAbsent(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	// 已经存在时插入影响0行, 仍然按邮箱返回原记录
	mock.ExpectExec("INSERT INTO `app_users` .*ON DUPLICATE KEY UPDATE.*").
		WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows([]string{"id", "email", "name", "ctime", "utime"}).
		AddRow(1, "guest@fashionshop.local", "Guest", 10, 10)
	mock.ExpectQuery("SELECT \\* FROM `app_users` WHERE email = \\?.*").
		WillReturnRows(rows)

	d := NewGORMBuyerDAO(newMockDB(t, mockDB))
	b, err := d.CreateIfAbsent(context.Background(), Buyer{Email: "guest@fashionshop.local", Name: "Guest"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.Id)
	assert.Equal(t, "Guest", b.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
