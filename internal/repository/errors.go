package repository

import "errors"

// ErrDuplicate is returned by Insert/Create implementations when a uniqueness
// constraint rejects the row. For documents this is the (company_id,
// content_hash) constraint that arbitrates concurrent uploads of identical
// content; services translate it into their conflict error.
var ErrDuplicate = errors.New("duplicate record")
