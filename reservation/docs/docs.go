// Package docs registers the OpenAPI document served under /swagger.
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
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Iniciar sesion",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}],
                "responses": {"200": {"description": "token"}, "401": {"description": "credenciales invalidas"}, "429": {"description": "demasiados intentos"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registrar cliente",
                "responses": {"201": {"description": "usuario creado"}, "409": {"description": "nombre de usuario en uso"}}
            }
        },
        "/salones": {
            "get": {"tags": ["salones"], "summary": "Listar salones", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["salones"], "summary": "Crear salon", "security": [{"Bearer": []}], "responses": {"201": {"description": "creado"}}}
        },
        "/servicios": {
            "get": {"tags": ["servicios"], "summary": "Listar servicios", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["servicios"], "summary": "Crear servicio", "security": [{"Bearer": []}], "responses": {"201": {"description": "creado"}}}
        },
        "/turnos": {
            "get": {"tags": ["turnos"], "summary": "Listar turnos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["turnos"], "summary": "Crear turno", "security": [{"Bearer": []}], "responses": {"201": {"description": "creado"}}}
        },
        "/reservas": {
            "get": {"tags": ["reservas"], "summary": "Listar reservas visibles para el usuario", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["reservas"],
                "summary": "Crear reserva",
                "security": [{"Bearer": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateReservationRequest"}}],
                "responses": {"201": {"description": "creada"}, "404": {"description": "salon o turno inexistente"}, "409": {"description": "turno ocupado"}}
            }
        },
        "/reservas/{id}": {
            "get": {"tags": ["reservas"], "summary": "Obtener reserva", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "no encontrada"}}},
            "put": {"tags": ["reservas"], "summary": "Actualizar reserva", "security": [{"Bearer": []}], "responses": {"204": {"description": "actualizada"}, "409": {"description": "turno ocupado"}}},
            "delete": {"tags": ["reservas"], "summary": "Eliminar reserva", "security": [{"Bearer": []}], "responses": {"204": {"description": "eliminada"}, "404": {"description": "no encontrada"}}}
        },
        "/reservas/disponibilidad": {
            "get": {"tags": ["reservas"], "summary": "Consultar disponibilidad", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reservas/cotizacion": {
            "post": {"tags": ["reservas"], "summary": "Cotizar salon y servicios", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/estadisticas": {
            "get": {"tags": ["estadisticas"], "summary": "Estadisticas de reservas", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reportes/pdf": {
            "get": {"tags": ["reportes"], "summary": "Reporte PDF", "security": [{"Bearer": []}], "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}, "404": {"description": "sin reservas"}}}
        },
        "/reportes/csv": {
            "get": {"tags": ["reportes"], "summary": "Reporte CSV", "security": [{"Bearer": []}], "produces": ["text/csv"], "responses": {"200": {"description": "OK"}, "404": {"description": "sin reservas"}}}
        },
        "/files/upload": {
            "post": {"tags": ["files"], "summary": "Subir imagen", "security": [{"Bearer": []}], "consumes": ["multipart/form-data"], "responses": {"201": {"description": "OK"}, "413": {"description": "archivo demasiado grande"}}}
        }
    },
    "definitions": {
        "model.LoginRequest": {
            "type": "object",
            "required": ["nombre_usuario", "contrasenia"],
            "properties": {
                "nombre_usuario": {"type": "string"},
                "contrasenia": {"type": "string"}
            }
        },
        "model.ServiceSelection": {
            "type": "object",
            "properties": {
                "servicio_id": {"type": "integer"},
                "importe": {"type": "number"}
            }
        },
        "model.CreateReservationRequest": {
            "type": "object",
            "required": ["fecha_reserva", "salon_id", "turno_id"],
            "properties": {
                "fecha_reserva": {"type": "string", "example": "2025-03-14"},
                "salon_id": {"type": "integer"},
                "turno_id": {"type": "integer"},
                "tematica": {"type": "string"},
                "foto_cumpleaniero": {"type": "string"},
                "servicios": {"type": "array", "items": {"$ref": "#/definitions/model.ServiceSelection"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Venue Reservation API",
	Description:      "Reservas de salones de cumpleanos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
