package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrEncode возвращается при ошибке сериализации сессии
	ErrEncode = errors.New("session.repository: failed to encode session")

	// ErrDecode возвращается при ошибке десериализации сессии
	ErrDecode = errors.New("session.repository: failed to decode session")

	// ErrStorage возвращается при ошибках Redis
	ErrStorage = errors.New("session.repository: storage error")
)
