// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/status": {
            "get": {
                "description": "Most recent decision record. Assesses the current snapshot if nothing is stored yet.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Latest status report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/status/download": {
            "get": {
                "description": "Same record as /status, served as model_output.json.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Download status report",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "description": "Evaluation counters, last stress index and publish failures in text exposition format.",
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Prometheus metrics",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket pushing {\"type\":\"status\",\"data\":StatusReport} every interval (e.g. ?interval=2s or ?interval_ms=2000).",
                "tags": ["status"],
                "summary": "Live status stream",
                "parameters": [
                    {"type": "string", "description": "Push period as a Go duration", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Push period in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register operator",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/signals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["signals"],
                "summary": "Current signals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/grid.SensorSnapshot"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Out-of-range values are rejected with 400 and nothing is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["signals"],
                "summary": "Override signals",
                "parameters": [{"description": "Fields to override", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SignalPatchRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/grid.SensorSnapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/signals/random": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["signals"],
                "summary": "Randomize signals",
                "parameters": [{"description": "Regime", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handlers.RandomizeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/grid.SensorSnapshot"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/assess": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Evaluates the current signals, stores the report and publishes it.",
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Assess current snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ReportEntry"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/evaluate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Stateless evaluation of a caller-supplied snapshot. Nothing is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Evaluate a snapshot",
                "parameters": [{"description": "Sensor snapshot", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/grid.SensorSnapshot"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Stored evaluations, newest first.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "List status reports",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range", "name": "to", "in": "query"},
                    {"enum": ["Normal", "Fault", "Critical"], "type": "string", "description": "Status tier", "name": "tier", "in": "query"},
                    {"type": "integer", "description": "Maximum rows (default 100, max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, reports", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Operational log, oldest first.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range", "name": "to", "in": "query"},
                    {"enum": ["SIGNALS_RANDOMIZED", "SIGNALS_OVERRIDDEN", "CRITICAL", "FAULT"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "grid.SensorSnapshot": {
            "type": "object",
            "properties": {
                "temperature": {"type": "integer", "example": 95},
                "humidity": {"type": "integer", "example": 90},
                "component_age_score": {"type": "integer", "example": 85},
                "load_percentage": {"type": "integer", "example": 95},
                "fault_signal": {"type": "integer", "example": 1},
                "current_topology": {"type": "string", "enum": ["Normal-A/B", "Rerouted-B/A"]},
                "renewable_input": {"type": "integer", "example": 900},
                "weather_score": {"type": "number", "example": 0.7}
            }
        },
        "handlers.RandomizeRequest": {
            "type": "object",
            "properties": {"critical": {"type": "boolean", "example": true}}
        },
        "handlers.SignalPatchRequest": {"$ref": "#/definitions/grid.SensorSnapshot"},
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handlers.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.ReportEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "evaluated_at": {"type": "string"},
                "snapshot": {"$ref": "#/definitions/grid.SensorSnapshot"},
                "report": {"$ref": "#/definitions/models.StatusReport"}
            }
        },
        "models.StatusReport": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["Normal", "Fault", "Critical"]},
                "system_health": {"type": "string", "enum": ["HEALTHY", "ALERT"]},
                "stress_index": {"type": "number", "example": 90.5},
                "fault_alert": {"type": "string"},
                "self_care_action": {"type": "string"},
                "reroute_status": {"type": "string"},
                "future_prediction": {"type": "string"},
                "sustainability_focus": {"type": "string"},
                "timestamp": {"type": "string", "example": "2025-03-01T12:30:00Z"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GridSense API",
	Description:      "Grid sensor status engine: signals, decisions, history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
