package service

import (
	"context"

	"github.com/latch-net/latch-be/internal/model"
)

// IAuthService manages operator accounts and their access tokens.
type IAuthService interface {
	Register(ctx context.Context, userReg *model.DTOUserRegisterRequest) (*model.User, error)
	Login(ctx context.Context, userLog *model.DTOLoginRequest) (*model.DTOLoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error)
}

// ICommandService drives the lock controller on behalf of operators and
// records every outcome to command history.
type ICommandService interface {
	Lock(ctx context.Context, userID int) (*model.DTOCommandResult, error)
	Unlock(ctx context.Context, userID int) (*model.DTOCommandResult, error)
	Send(ctx context.Context, userID int, req *model.DTOSendRequest) (*model.DTOCommandResult, error)
	History(ctx context.Context, userID int) ([]*model.CommandRecord, error)
}
