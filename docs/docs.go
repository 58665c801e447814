package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "description": "REST API for the CyberX port scanner. Runs TCP connect and UDP probes against a single target, either synchronously or as queued background tasks.",
    "title": "CyberX Scanner API",
    "license": {
      "name": "MIT",
      "url": "https://opensource.org/licenses/MIT"
    },
    "version": "1.0"
  },
  "host": "localhost:8787",
  "basePath": "/",
  "schemes": [
    "http"
  ],
  "paths": {
    "/api/scan": {
      "post": {
        "consumes": [
          "application/json"
        ],
        "produces": [
          "application/json"
        ],
        "summary": "Scan a target and wait for the results",
        "description": "Runs TCP connect and/or UDP probes against every requested port and answers once all probes finished. Every port and enabled protocol yields exactly one result; results are sorted by port, then protocol.",
        "operationId": "scan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "description": "Scan request parameters",
            "name": "scanRequest",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/ScanRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Completed scan",
            "schema": {
              "$ref": "#/definitions/ScanResponse"
            }
          },
          "400": {
            "description": "Malformed JSON body, missing target/ports, or too many ports",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "429": {
            "description": "Rate limit exceeded",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "The scan could not complete",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    },
    "/api/scans": {
      "post": {
        "consumes": [
          "application/json"
        ],
        "produces": [
          "application/json"
        ],
        "summary": "Create a background scan task",
        "description": "Validates the scan definition, persists it and enqueues it for background workers before returning a UUID.",
        "operationId": "createScan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "description": "Scan request parameters",
            "name": "scanRequest",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/ScanRequest"
            }
          }
        ],
        "responses": {
          "202": {
            "description": "Scan task accepted",
            "schema": {
              "$ref": "#/definitions/ScanAcceptedResponse"
            }
          },
          "400": {
            "description": "Invalid request payload",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "429": {
            "description": "Rate limit exceeded",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "Failed to persist or queue the task",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    },
    "/api/scans/{id}": {
      "get": {
        "produces": [
          "application/json"
        ],
        "summary": "Get scan status and results",
        "description": "Retrieve a snapshot of a background scan task. Poll until status is completed or failed.",
        "operationId": "getScan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "type": "string",
            "format": "uuid",
            "description": "Scan task ID (UUID v4)",
            "name": "id",
            "in": "path",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "Current task snapshot",
            "schema": {
              "$ref": "#/definitions/ScanTask"
            }
          },
          "400": {
            "description": "Invalid task id format",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "404": {
            "description": "Task not found",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "Failed to load task",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    },
    "/healthz": {
      "get": {
        "produces": [
          "application/json"
        ],
        "summary": "Health check",
        "operationId": "health",
        "tags": [
          "System"
        ],
        "responses": {
          "200": {
            "description": "Service and task store are reachable",
            "schema": {
              "$ref": "#/definitions/HealthResponse"
            }
          },
          "503": {
            "description": "Task store unavailable",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    }
  },
  "securityDefinitions": {
    "ApiKeyAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "definitions": {
    "ErrorResponse": {
      "type": "object",
      "properties": {
        "error": {
          "type": "string",
          "example": "target and ports are required"
        }
      }
    },
    "HealthResponse": {
      "type": "object",
      "properties": {
        "status": {
          "type": "string",
          "example": "ok"
        }
      }
    },
    "ScanAcceptedResponse": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "format": "uuid",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "enum": [
            "pending"
          ],
          "example": "pending"
        }
      }
    },
    "ScanRequest": {
      "type": "object",
      "required": [
        "target",
        "ports"
      ],
      "properties": {
        "target": {
          "type": "string",
          "description": "Hostname or IP literal to scan.",
          "example": "scanme.nmap.org"
        },
        "ports": {
          "type": "string",
          "description": "Comma-separated ports and inclusive ranges. Duplicates, malformed tokens and ports outside 1-65535 are dropped.",
          "example": "22,80,443,8000-8010"
        },
        "tcp": {
          "type": "boolean",
          "description": "Run a TCP connect probe per port. Defaults to true.",
          "example": true
        },
        "udp": {
          "type": "boolean",
          "description": "Run a UDP probe per port. Defaults to false.",
          "example": false
        },
        "timeoutMs": {
          "type": "integer",
          "description": "Per-probe timeout in milliseconds. Defaults to 1200, minimum 200.",
          "example": 1200
        },
        "concurrency": {
          "type": "integer",
          "description": "Worker pool size. Defaults to 200, minimum 1.",
          "example": 200
        },
        "retries": {
          "type": "integer",
          "description": "UDP attempts per port. Defaults to 2, minimum 1.",
          "example": 2
        }
      }
    },
    "ScanSettings": {
      "type": "object",
      "properties": {
        "target": {
          "type": "string",
          "example": "scanme.nmap.org"
        },
        "ports": {
          "type": "string",
          "example": "22,80,443"
        },
        "tcp": {
          "type": "boolean",
          "example": true
        },
        "udp": {
          "type": "boolean",
          "example": false
        },
        "timeoutMs": {
          "type": "integer",
          "example": 1200
        },
        "concurrency": {
          "type": "integer",
          "example": 200
        },
        "retries": {
          "type": "integer",
          "example": 2
        }
      }
    },
    "ScanResult": {
      "type": "object",
      "properties": {
        "port": {
          "type": "integer",
          "example": 22
        },
        "protocol": {
          "type": "string",
          "enum": [
            "tcp",
            "udp"
          ],
          "example": "tcp"
        },
        "state": {
          "type": "string",
          "enum": [
            "open",
            "closed",
            "filtered",
            "open_or_filtered"
          ],
          "example": "open"
        },
        "reason": {
          "type": "string",
          "example": "tcp connect ok"
        },
        "latencyMs": {
          "type": "integer",
          "x-nullable": true,
          "example": 3
        }
      }
    },
    "ScanResponse": {
      "type": "object",
      "properties": {
        "target": {
          "type": "string",
          "example": "scanme.nmap.org"
        },
        "count": {
          "type": "integer",
          "example": 2
        },
        "results": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/ScanResult"
          }
        }
      }
    },
    "ScanTask": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "format": "uuid",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "enum": [
            "pending",
            "running",
            "completed",
            "failed"
          ],
          "example": "pending"
        },
        "request": {
          "$ref": "#/definitions/ScanSettings"
        },
        "count": {
          "type": "integer",
          "example": 0
        },
        "results": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/ScanResult"
          }
        },
        "created_at": {
          "type": "string",
          "format": "date-time",
          "example": "2024-01-02T15:04:05Z"
        },
        "completed_at": {
          "type": "string",
          "format": "date-time",
          "example": "2024-01-02T15:06:30Z"
        },
        "error": {
          "type": "string",
          "example": "scan deadline exceeded"
        }
      }
    }
  }
}
`

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

type swaggerDoc struct{}

func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}
