package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/service/auth"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(MockUserStore)
		svc := NewUserService(users, plainHasher{}, db, discardLogger)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "learner@example.com" && u.HashedPassword == "hashed:correct horse battery" && u.Password == ""
		})).Return(nil)

		user, err := svc.Register(ctx, " learner@example.com ", "correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(MockUserStore)
		svc := NewUserService(users, plainHasher{}, db, discardLogger)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		_, err := svc.Register(ctx, "learner@example.com", "correct horse battery")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("short password is rejected before storage", func(t *testing.T) {
		db, _ := newTxDB(t)
		users := new(MockUserStore)
		svc := NewUserService(users, plainHasher{}, db, discardLogger)

		_, err := svc.Register(ctx, "learner@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(MockUserStore)
		svc := NewUserService(users, plainHasher{}, db, discardLogger)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		users.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.Register(ctx, "learner@example.com", "correct horse battery")
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "register", svcErr.Operation)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: uuid.New(), Email: "learner@example.com", HashedPassword: "hashed:correct horse battery"}

	tests := []struct {
		name     string
		email    string
		password string
		lookup   error
		wantErr  error
	}{
		{name: "valid", email: "learner@example.com", password: "correct horse battery"},
		{name: "wrong password", email: "learner@example.com", password: "incorrect", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "x", lookup: store.ErrUserNotFound, wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserStore)
			if tt.lookup != nil {
				users.On("GetByEmail", mock.Anything, tt.email).Return(nil, tt.lookup)
			} else {
				users.On("GetByEmail", mock.Anything, tt.email).Return(stored, nil)
			}
			svc := NewUserService(users, plainHasher{}, nil, discardLogger)

			user, err := svc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	users := new(MockUserStore)
	id := uuid.New()
	users.On("GetByID", mock.Anything, id).Return(nil, store.ErrUserNotFound)
	svc := NewUserService(users, plainHasher{}, nil, discardLogger)

	_, err := svc.GetUser(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
