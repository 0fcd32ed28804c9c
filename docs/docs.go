// Package docs holds the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "記事一覧取得（ページネーション・フィルタ対応）",
                "parameters": [
                    {"type": "integer", "default": 1, "minimum": 1, "description": "ページ番号 (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "maximum": 100, "minimum": 1, "description": "1ページあたりの件数", "name": "limit", "in": "query"},
                    {"type": "string", "description": "カテゴリ（All は全件）", "name": "category", "in": "query"},
                    {"type": "string", "description": "並び順 例: -createdAt,title", "name": "sort", "in": "query"},
                    {"type": "string", "description": "返すフィールド 例: title,category", "name": "select", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "ページネーション付き記事一覧"},
                    "400": {"description": "不正なクエリ", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "500": {"description": "サーバーエラー", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "記事作成",
                "parameters": [
                    {"type": "string", "description": "タイトル（200文字以内）", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "概要（300文字以内）", "name": "summary", "in": "formData", "required": true},
                    {"type": "string", "description": "本文（HTML）", "name": "content", "in": "formData", "required": true},
                    {"type": "string", "description": "カテゴリ", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "description": "著者", "name": "author", "in": "formData", "required": true},
                    {"type": "file", "description": "画像", "name": "imageUrl", "in": "formData", "required": true},
                    {"type": "file", "description": "動画", "name": "videoUrl", "in": "formData"},
                    {"type": "file", "description": "音声", "name": "audioUrl", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "作成された記事", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "入力エラー", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "401": {"description": "認証が必要です", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "403": {"description": "管理者権限が必要です", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "502": {"description": "メディアストレージ障害", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/articles/feed.rss": {
            "get": {
                "produces": ["application/rss+xml"],
                "tags": ["articles"],
                "summary": "RSSフィード",
                "responses": {"200": {"description": "RSS 2.0"}}
            }
        },
        "/articles/upload/files": {
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "メディアアップロード",
                "parameters": [
                    {"type": "file", "name": "imageUrl", "in": "formData"},
                    {"type": "file", "name": "videoUrl", "in": "formData"},
                    {"type": "file", "name": "audioUrl", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "アップロード結果", "schema": {"$ref": "#/definitions/article.MediaURLs"}},
                    "400": {"description": "ファイルがありません / 形式エラー", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "記事詳細取得",
                "parameters": [{"type": "string", "description": "記事ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "記事詳細", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "404": {"description": "記事が見つかりません", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "記事更新",
                "parameters": [{"type": "string", "description": "記事ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "更新後の記事", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "入力エラー", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "401": {"description": "認証が必要です / 権限がありません", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "404": {"description": "記事が見つかりません", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "記事削除",
                "parameters": [{"type": "string", "description": "記事ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "削除成功"},
                    "401": {"description": "認証が必要です / 権限がありません", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "404": {"description": "記事が見つかりません", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "カテゴリ一覧",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "ユーザー登録",
                "responses": {"201": {"description": "登録成功。token クッキーを設定します"}, "400": {"description": "入力エラー"}, "429": {"description": "レート制限"}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "ログイン",
                "responses": {"200": {"description": "ログイン成功。token クッキーを設定します"}, "401": {"description": "認証失敗"}, "429": {"description": "レート制限"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "ログイン中のユーザー",
                "responses": {"200": {"description": "OK"}, "401": {"description": "認証が必要です"}}
            }
        },
        "/auth/logout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "ログアウト",
                "responses": {"200": {"description": "token クッキーを無効化します"}}
            }
        }
    },
    "definitions": {
        "article.DTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "665f1c2e9b1d4a0012345678"},
                "title": {"type": "string", "example": "Parliament passes budget"},
                "summary": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string", "example": "Politics"},
                "author": {"type": "string", "example": "Jane Doe"},
                "imageUrl": {"type": "string"},
                "videoUrl": {"type": "string", "x-nullable": true},
                "audioUrl": {"type": "string", "x-nullable": true},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string", "example": "2025-10-26T12:00:00Z"},
                "updatedAt": {"type": "string", "example": "2025-10-26T12:00:00Z"}
            }
        },
        "article.MediaURLs": {
            "type": "object",
            "properties": {
                "imageUrl": {"type": "string"},
                "videoUrl": {"type": "string"},
                "audioUrl": {"type": "string"}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/respond.FieldError"}}
            }
        },
        "respond.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "description": "ログイン時に発行される HttpOnly クッキー",
            "type": "apiKey",
            "name": "token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "News Portal API",
	Description:      "ニュース記事の公開・管理 REST API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
