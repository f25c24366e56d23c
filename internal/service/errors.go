package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthenticated     = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("invalid parameter")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("permission denied")
	ErrArticleNotFound   = errors.New("article not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrNotAccountMember  = errors.New("not a member of this account")
	ErrInvalidVoteType   = errors.New("invalid vote type")
	ErrInvalidEventType  = errors.New("invalid event type")
	ErrInvalidStatus     = errors.New("invalid article status")
	ErrInvalidVisibility = errors.New("invalid article visibility")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrVoteConflict      = errors.New("concurrent vote conflict")
	ErrActionDuplicate   = errors.New("duplicate action")
	UnExpectedError      = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUnauthenticated:   Unauthenticated,
	ErrForbidden:         Forbidden,
	ErrArticleNotFound:   NotFound,
	ErrAccountNotFound:   NotFound,
	ErrNotAccountMember:  Forbidden,
	ErrInvalidVoteType:   BadRequest,
	ErrInvalidEventType:  BadRequest,
	ErrInvalidStatus:     BadRequest,
	ErrInvalidVisibility: BadRequest,
	ErrInvalidTransition: BadRequest,
	ErrVoteConflict:      Conflict,
	ErrActionDuplicate:   BadRequest,
	UnExpectedError:      InternalServerError,
}
