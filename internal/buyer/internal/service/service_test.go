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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecodeclub/storefront/internal/buyer/internal/domain"
	"github.com/ecodeclub/storefront/internal/buyer/internal/repository"
	"github.com/ecodeclub/storefront/internal/buyer/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestService_ResolveBuyer(t *testing.T) {
	testCases := []struct {
		name      string
		identity  domain.Identity
		mock      func(mock sqlmock.Sqlmock)
		wantBuyer domain.Buyer
		wantErr   bool
	}{
		{
			name:     "未登录使用游客",
			identity: domain.Identity{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `app_users` .*").
					WithArgs(domain.GuestEmail, domain.GuestName, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectQuery("SELECT \\* FROM `app_users` WHERE email = \\?.*").
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
						AddRow(1, domain.GuestEmail, domain.GuestName))
			},
			wantBuyer: domain.Buyer{ID: 1, Email: domain.GuestEmail, Name: domain.GuestName},
		},
		{
			name:     "登录但没有邮箱使用游客",
			identity: domain.Identity{Authenticated: true, Email: "   ", DisplayName: "Bob"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `app_users` .*").
					WithArgs(domain.GuestEmail, domain.GuestName, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT \\* FROM `app_users` WHERE email = \\?.*").
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
						AddRow(1, domain.GuestEmail, domain.GuestName))
			},
			wantBuyer: domain.Buyer{ID: 1, Email: domain.GuestEmail, Name: domain.GuestName},
		},
		{
			name:     "登录用户按邮箱同步",
			identity: domain.Identity{Authenticated: true, Email: " bob@example.com ", DisplayName: " Bob "},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `app_users` .*").
					WithArgs("bob@example.com", "Bob", sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectQuery("SELECT \\* FROM `app_users` WHERE email = \\?.*").
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
						AddRow(5, "bob@example.com", "Bob"))
			},
			wantBuyer: domain.Buyer{ID: 5, Email: "bob@example.com", Name: "Bob"},
		},
		{
			name:     "数据库错误",
			identity: domain.Identity{Authenticated: true, Email: "bob@example.com"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `app_users` .*").
					WillReturnError(errors.New("mock db error"))
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			tc.mock(mock)
			db, err := gorm.Open(gormMysql.New(gormMysql.Config{
				Conn:                      mockDB,
				SkipInitializeWithVersion: true,
			}), &gorm.Config{
				DisableAutomaticPing:   true,
				SkipDefaultTransaction: true,
			})
			require.NoError(t, err)

			svc := NewService(repository.NewBuyerRepository(dao.NewGORMBuyerDAO(db)))
			b, err := svc.ResolveBuyer(context.Background(), tc.identity)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBuyer, b)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
