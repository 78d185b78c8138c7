// Package mocks provides function-field mocks shared by handler and
// middleware tests.
//
// Every mock has one field per interface method. A nil field falls back to
// the mock's default values, so a test only sets what it exercises:
//
//	jwtService := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: userID}, nil
//	    },
//	}
package mocks
