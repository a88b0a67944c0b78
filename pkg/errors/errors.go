package errors

import (
	"errors"
	"fmt"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Жизненный цикл оборудования
	ErrNoMainWarehouse = fmt.Errorf("главный склад не настроен: создайте склад с признаком is_main")
	ErrAlreadyClosed   = fmt.Errorf("запись о ремонте уже закрыта")
)

// HttpError - ошибка с HTTP-кодом для слоя контроллеров.
// Message показывается пользователю, Err и Context уходят только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// TransitionError - запрошенная пара (from, to) отсутствует в таблице переходов.
// Никаких изменений при этом не происходит.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("невозможен переход из '%s' в '%s'", e.From, e.To)
}

func NewTransitionError(from, to string) error {
	return &TransitionError{From: from, To: to}
}

// IsTransitionError сообщает, является ли err ошибкой недопустимого перехода.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}

// PreconditionError - конфликт входных данных перехода: одновременно указаны
// room и warehouse, либо для перехода не хватает обязательной подсказки.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func NewPreconditionError(format string, args ...interface{}) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// InvalidInputError - ошибка валидации бизнес-данных (например, дубли ИНН
// при массовом создании). Весь батч отклоняется до записи.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

func IsInvalidInputError(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
