package inbound

import (
	"net/http"
	"time"
)

type HashPasswordRequest struct {
	Password string `json:"password"`
}

type HashPasswordResponse struct {
	Hash      string `json:"hash"`
	Algorithm string `json:"algorithm"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

type SolvePasswordRequest struct {
	Hash  string  `json:"hash"`
	Clues [][]int `json:"clues"`
}

type SolvePasswordResponse struct {
	Password string `json:"password"`
	Tries    int    `json:"tries"`
	Strategy string `json:"strategy"`
}

func (SolvePasswordResponse) Message() string {
	return "Password solved"
}

type SetLockRequest struct {
	Password string `json:"password"`
}

type SetLockResponse struct {
	LockID string `json:"lock_id"`
	Hash   string `json:"hash"`
}

func (SetLockResponse) Message() string {
	return "Lock password has been set"
}

type GetLockResponse struct {
	LockID    string    `json:"lock_id"`
	Hash      string    `json:"hash"`
	Algorithm string    `json:"algorithm"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UnlockRequest struct {
	Password string `json:"password"`
}

type UnlockResponse struct {
	Unlocked bool `json:"unlocked"`
}

func (r UnlockResponse) Message() string {
	if r.Unlocked {
		return "Lock opened"
	}
	return "Wrong password"
}

type DeleteLockResponse struct{}

func (DeleteLockResponse) StatusCode() int {
	return http.StatusNoContent
}
