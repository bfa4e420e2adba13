// Package docs holds the Swagger document for the invoice API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.messageResponse"}
                    }
                }
            }
        },
        "/invoices": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Generate an invoice PDF",
                "parameters": [
                    {
                        "description": "Billing request",
                        "name": "invoice",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/invoice.Payload"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.createResponse"}
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {"$ref": "#/definitions/api.detailResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/api.detailResponse"}
                    }
                }
            }
        },
        "/invoices/{filename}": {
            "get": {
                "produces": ["application/pdf"],
                "summary": "Download a generated invoice",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Invoice file name",
                        "name": "filename",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "file"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.detailResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "api.createResponse": {
            "type": "object",
            "properties": {
                "filename": {"type": "string", "example": "invoice_20250101_120000.pdf"}
            }
        },
        "api.detailResponse": {
            "type": "object",
            "properties": {
                "detail": {}
            }
        },
        "api.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "invoice.ItemPayload": {
            "type": "object",
            "required": ["item", "qty", "price"],
            "properties": {
                "item": {"type": "string"},
                "qty": {"type": "integer", "minimum": 0},
                "price": {"type": "number", "minimum": 0, "maximum": 1000000000000, "multipleOf": 0.00000001}
            }
        },
        "invoice.Payload": {
            "type": "object",
            "required": ["client_name", "client_email", "items"],
            "properties": {
                "client_name": {"type": "string"},
                "client_email": {"type": "string"},
                "currency": {"type": "string", "default": "$"},
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/invoice.ItemPayload"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Generator API",
	Description:      "Generates one-page invoice PDFs and serves them back by file name.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
