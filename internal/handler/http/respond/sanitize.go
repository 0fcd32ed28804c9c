package respond

import (
	"regexp"
)

var (
	// JWT（ヘッダ.ペイロード.署名）
	jwtPattern = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// DSN / CLOUDINARY_URL 内の認証情報
	credentialURLPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// api_secret=..., signature=... などのクエリ
	secretParamPattern = regexp.MustCompile(`(?i)(api_secret|signature|password)=([^&\s]+)`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = jwtPattern.ReplaceAllString(msg, "eyJ****")
	msg = credentialURLPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretParamPattern.ReplaceAllString(msg, "$1=****")
	return msg
}
