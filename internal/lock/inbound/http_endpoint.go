package inbound

import (
	"github.com/shandysiswandi/saltlock/internal/lock/usecase"
	"github.com/shandysiswandi/saltlock/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for password hashing and named locks.
type HTTPEndpoint struct {
	uc uc
}

// HashPassword hashes a password with the configured algorithm.
// @Summary Hash password
// @Description Returns the digest of the password. With salted_sha256 this is the lowercase hex SHA-256 of the fixed salt followed by the password.
// @Tags Passwords
// @Accept json
// @Produce json
// @Param request body HashPasswordRequest true "Hash payload"
// @Success 200 {object} router.successResponse{data=HashPasswordResponse} "Hash result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/passwords/hash [post]
func (h *HTTPEndpoint) HashPassword(r *router.Request) (any, error) {
	var req HashPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.HashPassword(r.Context(), usecase.HashPasswordInput{Password: req.Password})
	if err != nil {
		return nil, err
	}

	return HashPasswordResponse{Hash: resp.Hash, Algorithm: resp.Algorithm}, nil
}

// VerifyPassword checks a password against a previously returned hash.
// @Summary Verify password
// @Description Reports whether the password produces the given hash. A mismatch is not an error.
// @Tags Passwords
// @Accept json
// @Produce json
// @Param request body VerifyPasswordRequest true "Verify payload"
// @Success 200 {object} router.successResponse{data=VerifyPasswordResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/passwords/verify [post]
func (h *HTTPEndpoint) VerifyPassword(r *router.Request) (any, error) {
	var req VerifyPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyPassword(r.Context(), usecase.VerifyPasswordInput{
		Password: req.Password,
		Hash:     req.Hash,
	})
	if err != nil {
		return nil, err
	}

	return VerifyPasswordResponse{Valid: resp.Valid}, nil
}

// SolvePassword recovers a three digit password from its salted SHA-256 hash.
// @Summary Solve password
// @Description Enumerates three digit candidates allowed by the clues and returns the one matching the hash, with the tries taken by the cheapest strategy. Clues: [-1,-1] all digits prime and distinct; [pos,parity] digit at pos 1-3 even (0) or odd (1); [d1,d2,d3] fixes each digit that is not -1.
// @Tags Passwords
// @Accept json
// @Produce json
// @Param request body SolvePasswordRequest true "Solve payload"
// @Success 200 {object} router.successResponse{data=SolvePasswordResponse} "Solved password"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "No password matches the clues"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/passwords/solve [post]
func (h *HTTPEndpoint) SolvePassword(r *router.Request) (any, error) {
	var req SolvePasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SolvePassword(r.Context(), usecase.SolvePasswordInput{
		Hash:  req.Hash,
		Clues: req.Clues,
	})
	if err != nil {
		return nil, err
	}

	return SolvePasswordResponse{Password: resp.Password, Tries: resp.Tries, Strategy: resp.Strategy}, nil
}

// SetLock sets or replaces the password of a lock.
// @Summary Set lock password
// @Tags Locks
// @Accept json
// @Produce json
// @Param id path string true "Lock ID"
// @Param request body SetLockRequest true "Lock payload"
// @Success 200 {object} router.successResponse{data=SetLockResponse} "Lock stored"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 503 {object} router.errorResponse "Lock store unavailable"
// @Router /api/v1/locks/{id} [put]
func (h *HTTPEndpoint) SetLock(r *router.Request) (any, error) {
	var req SetLockRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SetLock(r.Context(), usecase.SetLockInput{
		LockID:   r.GetParam("id"),
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return SetLockResponse{LockID: resp.LockID, Hash: resp.Hash}, nil
}

// GetLock returns the stored record of a lock.
// @Summary Get lock
// @Tags Locks
// @Produce json
// @Param id path string true "Lock ID"
// @Success 200 {object} router.successResponse{data=GetLockResponse} "Lock record"
// @Failure 404 {object} router.errorResponse "Lock not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/locks/{id} [get]
func (h *HTTPEndpoint) GetLock(r *router.Request) (any, error) {
	resp, err := h.uc.GetLock(r.Context(), usecase.GetLockInput{LockID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return GetLockResponse{
		LockID:    resp.LockID,
		Hash:      resp.Hash,
		Algorithm: resp.Algorithm,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}

// Unlock verifies a candidate password against a lock.
// @Summary Unlock
// @Description Returns unlocked=false with status 200 when the password is wrong.
// @Tags Locks
// @Accept json
// @Produce json
// @Param id path string true "Lock ID"
// @Param request body UnlockRequest true "Unlock payload"
// @Success 200 {object} router.successResponse{data=UnlockResponse} "Unlock result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Lock not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/locks/{id}/unlock [post]
func (h *HTTPEndpoint) Unlock(r *router.Request) (any, error) {
	var req UnlockRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Unlock(r.Context(), usecase.UnlockInput{
		LockID:   r.GetParam("id"),
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return UnlockResponse{Unlocked: resp.Unlocked}, nil
}

// DeleteLock removes a lock.
// @Summary Delete lock
// @Tags Locks
// @Param id path string true "Lock ID"
// @Success 204 "Lock deleted"
// @Failure 404 {object} router.errorResponse "Lock not found"
// @Router /api/v1/locks/{id} [delete]
func (h *HTTPEndpoint) DeleteLock(r *router.Request) (any, error) {
	if err := h.uc.DeleteLock(r.Context(), usecase.DeleteLockInput{LockID: r.GetParam("id")}); err != nil {
		return nil, err
	}

	return DeleteLockResponse{}, nil
}
