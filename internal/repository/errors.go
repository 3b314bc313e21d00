package repository

import "errors"

var ErrNotFound = errors.New("not found")

// リモートAPIが401を返したとき。セッション破棄のトリガーになる。
var ErrUnauthorized = errors.New("unauthorized")
