package repository

import "context"

// 端末プロファイル単位のKVストア。リロード（プロセス再起動）をまたいで残る。
// 値はシリアライズ済みのJSONを入れる約束。
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ストアで使うキー。localStorage時代のキーに対応する。
const (
	StateKeyCart          = "cart"
	StateKeySession       = "session"
	StateKeyRedirectAfter = "redirect_after_login"
)
