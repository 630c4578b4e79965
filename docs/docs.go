// Package docs holds the generated OpenAPI description served at /swagger.
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
		"/auth/": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "User registration details",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.User"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/auth/token": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Obtain an access token",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/x-www-form-urlencoded",
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Username",
						"name": "username",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "Password",
						"name": "password",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.tokenResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log out",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/todos/": {
			"get": {
				"tags": [
					"todos"
				],
				"summary": "List own todos",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Todo"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/todos/todo": {
			"post": {
				"tags": [
					"todos"
				],
				"summary": "Create a todo",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Todo",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.todoRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Todo"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/todos/todo/{id}": {
			"get": {
				"tags": [
					"todos"
				],
				"summary": "Get a todo",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Todo ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Todo"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"todos"
				],
				"summary": "Update a todo",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Todo ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Todo",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.todoRequest"
						}
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"todos"
				],
				"summary": "Delete a todo",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Todo ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/admin/todos": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List all todos",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Todo"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/admin/todo/{id}": {
			"delete": {
				"tags": [
					"admin"
				],
				"summary": "Delete any todo",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Todo ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Current user profile",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.User"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/password": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Change password",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Current and new password",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.changePasswordRequest"
						}
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/change_phone_number/{phone_number}": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Change phone number",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "New phone number",
						"name": "phone_number",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/health/ready": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Readiness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.readinessResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.readinessResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.Todo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"priority": {
					"type": "integer"
				},
				"complete": {
					"type": "boolean"
				},
				"owner_id": {
					"type": "integer"
				}
			}
		},
		"domain.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"is_active": {
					"type": "boolean"
				},
				"phone_number": {
					"type": "string"
				}
			}
		},
		"handler.changePasswordRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string"
				},
				"new_password": {
					"type": "string",
					"minLength": 6
				}
			},
			"required": [
				"new_password",
				"password"
			]
		},
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string",
					"maxLength": 64
				},
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"phone_number": {
					"type": "string"
				}
			},
			"required": [
				"password",
				"username"
			]
		},
		"handler.todoRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string",
					"minLength": 3
				},
				"description": {
					"type": "string",
					"maxLength": 100,
					"minLength": 3
				},
				"priority": {
					"type": "integer",
					"maximum": 5,
					"minimum": 1
				},
				"is_complete": {
					"type": "boolean"
				}
			},
			"required": [
				"description",
				"title"
			]
		},
		"handler.tokenResponse": {
			"type": "object",
			"properties": {
				"access_token": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				},
				"expires_in": {
					"type": "integer"
				}
			}
		},
		"handler.dependencyStatus": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"handler.readinessResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"dependencies": {
					"type": "object",
					"additionalProperties": {
						"$ref": "#/definitions/handler.dependencyStatus"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the access token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Todo API",
	Description:      "Personal todo service with bearer-token authentication and an admin role.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
