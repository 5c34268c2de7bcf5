// Package messages holds the user-facing strings returned by the HTTP API.
package messages

type Key string

const (
	RegisterSuccess  Key = "RegisterSuccess"
	LoginSuccess     Key = "LoginSuccess"
	InvalidEmail     Key = "InvalidEmail"
	InvalidPassword  Key = "InvalidPassword"
	DashboardWelcome Key = "DashboardWelcome"
	TokenExpired     Key = "TokenExpired"
	TokenInvalid     Key = "TokenInvalid"
	TokenMissing     Key = "TokenMissing"
	LogoutSuccess    Key = "LogoutSuccess"
	LogoutFailed     Key = "LogoutFailed"
	InternalError    Key = "InternalError"
)

var table = map[Key]string{
	RegisterSuccess:  "Пользователь успешно зарегистрирован",
	LoginSuccess:     "Вход успешный",
	InvalidEmail:     "Неверный адрес электронной почты",
	InvalidPassword:  "Неправильный пароль",
	DashboardWelcome: "Добро пожаловать в вашу панель управления",
	TokenExpired:     "Срок действия токена истек",
	TokenInvalid:     "Токен недействителен",
	TokenMissing:     "Токен не предоставлен",
	LogoutSuccess:    "Успешно вышел из системы",
	LogoutFailed:     "Не удалось выйти",
	InternalError:    "Внутренняя ошибка сервера",
}

// Get returns the text for k, or the key itself when it is unknown.
func Get(k Key) string {
	if s, ok := table[k]; ok {
		return s
	}
	return string(k)
}

// Keys lists every defined key.
func Keys() []Key {
	return []Key{
		RegisterSuccess, LoginSuccess, InvalidEmail, InvalidPassword, DashboardWelcome,
		TokenExpired, TokenInvalid, TokenMissing, LogoutSuccess, LogoutFailed, InternalError,
	}
}
