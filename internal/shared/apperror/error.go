package apperror

import "fmt"

// AppError adalah error domain yang membawa kode mesin dan status HTTP.
// Sentinel per modul dibuat lewat New dan dibandingkan dengan errors.Is.
type AppError struct {
	Code       string // kode stabil untuk klien, misal CONFLICT
	Message    string // pesan yang aman ditampilkan ke pengguna
	HTTPStatus int
	Err        error // error asli, opsional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membungkus error asli tanpa membocorkannya ke pesan klien.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
