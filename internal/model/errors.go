package model

import "github.com/rotisserie/eris"

var (
	// ErrBackendUnavailable means the read layer could not reach the data store.
	ErrBackendUnavailable = eris.New("backend unavailable")

	// ErrCompanyNotFound means no company exists for the requested key.
	ErrCompanyNotFound = eris.New("company not found")
)
