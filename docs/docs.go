// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "in": "header", "name": "Cookie"},
        "BearerSession": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "security": [{"SessionCookie": []}, {"BearerSession": []}],
    "paths": {
        "/auth/signin": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/auth.Credentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign up",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/auth.Credentials"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard statistics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/api/v1/practicantes": {
            "get": {
                "tags": ["practicantes"],
                "summary": "List interns",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "area", "in": "query"},
                    {"type": "string", "enum": ["disponible", "asignado"], "name": "availability", "in": "query"},
                    {"type": "string", "name": "technology", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["practicantes"],
                "summary": "Create an intern",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "practicante", "required": true, "schema": {"$ref": "#/definitions/handlers.PracticantePayload"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/practicantes/import": {
            "post": {
                "tags": ["practicantes"],
                "summary": "Import interns from CSV",
                "consumes": ["multipart/form-data", "text/plain"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "enum": ["naive", "structured"], "name": "mode", "in": "query"},
                    {"type": "file", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/practicantes/{id}": {
            "get": {
                "tags": ["practicantes"],
                "summary": "Get an intern",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["practicantes"],
                "summary": "Replace an intern",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "practicante", "required": true, "schema": {"$ref": "#/definitions/handlers.PracticantePayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["practicantes"],
                "summary": "Delete an intern",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/proyectos": {
            "get": {
                "tags": ["proyectos"],
                "summary": "List projects",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            },
            "post": {
                "tags": ["proyectos"],
                "summary": "Create a project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "proyecto", "required": true, "schema": {"$ref": "#/definitions/handlers.ProyectoPayload"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/api/v1/proyectos/{id}": {
            "get": {
                "tags": ["proyectos"],
                "summary": "Get a project",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["proyectos"],
                "summary": "Replace a project",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "proyecto", "required": true, "schema": {"$ref": "#/definitions/handlers.ProyectoPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            },
            "delete": {
                "tags": ["proyectos"],
                "summary": "Delete a project",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/api/v1/asignaciones": {
            "get": {
                "tags": ["asignaciones"],
                "summary": "Interns available for assignment",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "area", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            },
            "post": {
                "tags": ["asignaciones"],
                "summary": "Assign an intern to a project",
                "parameters": [{"in": "body", "name": "asignacion", "required": true, "schema": {"$ref": "#/definitions/handlers.AssignRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/export/practicantes.html": {
            "get": {
                "tags": ["export"],
                "summary": "Export interns as HTML",
                "produces": ["text/html"],
                "responses": {"200": {"description": "HTML document", "schema": {"type": "string"}}}
            }
        },
        "/api/v1/export/practicantes.pdf": {
            "get": {
                "tags": ["export"],
                "summary": "Export interns as PDF",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "PDF document", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "auth.Credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.AssignRequest": {
            "type": "object",
            "required": ["proyecto_id", "practicante_id"],
            "properties": {
                "practicante_id": {"type": "string"},
                "proyecto_id": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.PracticantePayload": {
            "type": "object",
            "required": ["nombre"],
            "properties": {
                "apellido": {"type": "string"},
                "area": {"type": "string"},
                "carrera": {"type": "string"},
                "descripcion": {"type": "string"},
                "email": {"type": "string"},
                "estado": {"type": "string", "enum": ["disponible", "asignado"]},
                "nombre": {"type": "string"},
                "portafolio_url": {"type": "string"},
                "proyectos": {"type": "array", "items": {"type": "string"}},
                "semestre": {"type": "integer"},
                "soft_skills": {"type": "array", "items": {"type": "string"}},
                "tecnologias": {"type": "array", "items": {"type": "string"}},
                "telefono": {"type": "string"}
            }
        },
        "handlers.ProyectoPayload": {
            "type": "object",
            "required": ["nombre"],
            "properties": {
                "cliente": {"type": "string"},
                "descripcion": {"type": "string"},
                "estado": {"type": "string"},
                "lider": {"type": "string"},
                "nombre": {"type": "string"},
                "practicantes": {"type": "array", "items": {"type": "string"}}
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
	Title:            "PracticeHub API",
	Description:      "Interns, projects, assignments, CSV import and exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
