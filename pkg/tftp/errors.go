package tftp

// Códigos de error de RFC 1350.
const (
	ErrCodeNotDefined       uint16 = 0
	ErrCodeFileNotFound     uint16 = 1
	ErrCodeAccessViolation  uint16 = 2
	ErrCodeDiskFull         uint16 = 3
	ErrCodeIllegalOperation uint16 = 4
	ErrCodeUnknownTID       uint16 = 5
	ErrCodeFileExists       uint16 = 6
	ErrCodeNoSuchUser       uint16 = 7
)

var errorText = map[uint16]string{
	ErrCodeNotDefined:       "not defined",
	ErrCodeFileNotFound:     "file not found",
	ErrCodeAccessViolation:  "access violation",
	ErrCodeDiskFull:         "disk full or allocation exceeded",
	ErrCodeIllegalOperation: "illegal TFTP operation",
	ErrCodeUnknownTID:       "unknown transfer id",
	ErrCodeFileExists:       "file already exists",
	ErrCodeNoSuchUser:       "no such user",
}

// ErrorText devuelve la descripción estándar de un código, o "" si no existe.
func ErrorText(code uint16) string {
	return errorText[code]
}
