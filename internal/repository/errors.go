package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")
	// ユーザーが見つかりませんを統一
	ErrUserNotFound = errors.New("user not found")
	// 一意制約違反（email重複・同じ冪等キーなど）
	ErrDuplicate = errors.New("duplicate key")
	// IDの形式が不正
	ErrInvalidID = errors.New("invalid id")
	// 注文できるカートが無い（無い or 空）
	ErrCartEmpty = errors.New("cart empty")
)
