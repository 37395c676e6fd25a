// Package docs registers the Swagger document served at /swagger/*.
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
		"/jwt": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Issue an access token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.tokenResponse"
						}
					},
					"400": {
						"description": "Bad Request",
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
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Identity to sign",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.tokenRequest"
						}
					}
				]
			}
		},
		"/classes": {
			"get": {
				"tags": [
					"classes"
				],
				"summary": "List classes",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Class"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Instructor email",
						"name": "email",
						"in": "query",
						"required": false
					}
				]
			},
			"post": {
				"tags": [
					"classes"
				],
				"summary": "Create a class",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.InsertResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
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
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Class details",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createClassRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/instructor": {
			"get": {
				"tags": [
					"classes"
				],
				"summary": "List instructors",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Instructor"
							}
						}
					}
				}
			}
		},
		"/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.User"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"users"
				],
				"summary": "Register a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.InsertResult"
						}
					},
					"400": {
						"description": "Bad Request",
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
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "User profile",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				]
			}
		},
		"/users/admin/{email}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Check admin role",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.adminStatusResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Caller email",
						"name": "email",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/instructor/{email}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Check instructor role",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.instructorStatusResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Caller email",
						"name": "email",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/admin/{id}": {
			"patch": {
				"tags": [
					"users"
				],
				"summary": "Promote a user to admin",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.UpdateResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "User id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/instructor/{id}": {
			"patch": {
				"tags": [
					"users"
				],
				"summary": "Promote a user to instructor",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.UpdateResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "User id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/carts": {
			"get": {
				"tags": [
					"carts"
				],
				"summary": "List cart items",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.CartItem"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Owner email",
						"name": "email",
						"in": "query",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"carts"
				],
				"summary": "Add a cart item",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.InsertResult"
						}
					},
					"400": {
						"description": "Bad Request",
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
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Cart item",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.addCartItemRequest"
						}
					}
				]
			}
		},
		"/carts/{id}": {
			"delete": {
				"tags": [
					"carts"
				],
				"summary": "Remove a cart item",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.DeleteResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Cart item id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/create-payment-intent": {
			"post": {
				"tags": [
					"payments"
				],
				"summary": "Create a payment intent",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.paymentIntentResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Amount in currency units",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.paymentIntentRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/payments": {
			"post": {
				"tags": [
					"payments"
				],
				"summary": "Record a payment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ports.RecordPaymentResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
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
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Settled payment",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.recordPaymentRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/payments/{email}": {
			"get": {
				"tags": [
					"payments"
				],
				"summary": "List payments",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Payment"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Owner email",
						"name": "email",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
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
						"description": "OK"
					},
					"503": {
						"description": "Service Unavailable"
					}
				}
			}
		}
	},
	"definitions": {
		"domain.Class": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"instructorName": {
					"type": "string"
				},
				"instructorEmail": {
					"type": "string"
				},
				"availableSeats": {
					"type": "integer"
				},
				"price": {
					"type": "number"
				},
				"enrolled": {
					"type": "integer"
				},
				"status": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				}
			}
		},
		"domain.Instructor": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"classesTaken": {
					"type": "integer"
				},
				"classNames": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"domain.User": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"photo": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"profile": {
					"type": "object",
					"additionalProperties": true
				},
				"createdAt": {
					"type": "string"
				}
			}
		},
		"domain.CartItem": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"classId": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"instructorName": {
					"type": "string"
				}
			}
		},
		"domain.Payment": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"transactionId": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"date": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"cartItems": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"classItems": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"itemNames": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"status": {
					"type": "string"
				}
			}
		},
		"domain.InsertResult": {
			"type": "object",
			"properties": {
				"acknowledged": {
					"type": "boolean"
				},
				"insertedId": {
					"type": "string"
				}
			}
		},
		"domain.UpdateResult": {
			"type": "object",
			"properties": {
				"acknowledged": {
					"type": "boolean"
				},
				"matchedCount": {
					"type": "integer"
				},
				"modifiedCount": {
					"type": "integer"
				}
			}
		},
		"domain.DeleteResult": {
			"type": "object",
			"properties": {
				"acknowledged": {
					"type": "boolean"
				},
				"deletedCount": {
					"type": "integer"
				}
			}
		},
		"ports.RecordPaymentResult": {
			"type": "object",
			"properties": {
				"insertResult": {
					"$ref": "#/definitions/domain.InsertResult"
				},
				"deleteResult": {
					"$ref": "#/definitions/domain.DeleteResult"
				}
			}
		},
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.tokenRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				}
			},
			"required": [
				"email"
			]
		},
		"handler.tokenResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				}
			}
		},
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"photo": {
					"type": "string"
				}
			},
			"required": [
				"email"
			]
		},
		"handler.adminStatusResponse": {
			"type": "object",
			"properties": {
				"admin": {
					"type": "boolean"
				}
			}
		},
		"handler.instructorStatusResponse": {
			"type": "object",
			"properties": {
				"instructor": {
					"type": "boolean"
				}
			}
		},
		"handler.createClassRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"instructorName": {
					"type": "string"
				},
				"availableSeats": {
					"type": "integer"
				},
				"price": {
					"type": "number"
				}
			},
			"required": [
				"name"
			]
		},
		"handler.addCartItemRequest": {
			"type": "object",
			"properties": {
				"classId": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"instructorName": {
					"type": "string"
				}
			},
			"required": [
				"classId",
				"email"
			]
		},
		"handler.paymentIntentRequest": {
			"type": "object",
			"properties": {
				"price": {
					"type": "number"
				}
			}
		},
		"handler.paymentIntentResponse": {
			"type": "object",
			"properties": {
				"clientSecret": {
					"type": "string"
				}
			}
		},
		"handler.recordPaymentRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"transactionId": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"date": {
					"type": "string"
				},
				"cartItems": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"classItems": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"itemNames": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			},
			"required": [
				"transactionId"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Title:            "Summer Camp API",
	Description:      "Course registration backend: classes, carts, payments and role-gated administration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
