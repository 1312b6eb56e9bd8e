package inbound

import (
	"context"

	"github.com/shandysiswandi/saltlock/internal/lock/usecase"
	"github.com/shandysiswandi/saltlock/internal/pkg/router"
)

type uc interface {
	HashPassword(ctx context.Context, in usecase.HashPasswordInput) (*usecase.HashPasswordOutput, error)
	VerifyPassword(ctx context.Context, in usecase.VerifyPasswordInput) (*usecase.VerifyPasswordOutput, error)
	SolvePassword(ctx context.Context, in usecase.SolvePasswordInput) (*usecase.SolvePasswordOutput, error)

	SetLock(ctx context.Context, in usecase.SetLockInput) (*usecase.SetLockOutput, error)
	GetLock(ctx context.Context, in usecase.GetLockInput) (*usecase.GetLockOutput, error)
	Unlock(ctx context.Context, in usecase.UnlockInput) (*usecase.UnlockOutput, error)
	DeleteLock(ctx context.Context, in usecase.DeleteLockInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Stateless password hashing
	r.POST("/api/v1/passwords/hash", end.HashPassword)
	r.POST("/api/v1/passwords/verify", end.VerifyPassword)
	r.POST("/api/v1/passwords/solve", end.SolvePassword)

	// Named locks
	r.PUT("/api/v1/locks/:id", end.SetLock)
	r.GET("/api/v1/locks/:id", end.GetLock)
	r.POST("/api/v1/locks/:id/unlock", end.Unlock)
	r.DELETE("/api/v1/locks/:id", end.DeleteLock)
}
