package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Studio API",
        "description": "Back office for a yoga studio: customers, instructors, classes, packages, sales, attendance and reports.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Customers", "description": "Customer roster and class balances"},
        {"name": "Instructors", "description": "Instructor roster"},
        {"name": "Classes", "description": "Weekly class schedule"},
        {"name": "Packages", "description": "Prepaid package catalog"},
        {"name": "Sales", "description": "Package sales"},
        {"name": "Attendance", "description": "Session check-ins"},
        {"name": "Reports", "description": "Read-only aggregations"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/customers": {
            "get": {
                "tags": ["Customers"],
                "summary": "List customers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Customers"],
                "summary": "Create customer",
                "parameters": [
                    {"name": "force", "in": "query", "type": "boolean", "description": "Bypass the duplicate-name check"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCustomerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/customers/next-id": {
            "get": {
                "tags": ["Customers"],
                "summary": "Next customer identifier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/customers/{id}": {
            "get": {
                "tags": ["Customers"],
                "summary": "Get customer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Customers"],
                "summary": "Delete customer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/instructors": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List instructors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Instructors"],
                "summary": "Create instructor",
                "parameters": [
                    {"name": "force", "in": "query", "type": "boolean"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInstructorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/instructors/next-id": {
            "get": {
                "tags": ["Instructors"],
                "summary": "Next instructor identifier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/instructors/search": {
            "get": {
                "tags": ["Instructors"],
                "summary": "Search instructors by first name",
                "parameters": [
                    {"name": "firstname", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No match", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/instructors/{id}": {
            "get": {
                "tags": ["Instructors"],
                "summary": "Get instructor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Instructors"],
                "summary": "Delete instructor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "parameters": [
                    {"name": "force", "in": "query", "type": "boolean", "description": "Bypass the schedule-conflict check"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule conflict with alternative slots", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/classes/next-id": {
            "get": {
                "tags": ["Classes"],
                "summary": "Next class identifier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class with its weekly slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/packages": {
            "get": {
                "tags": ["Packages"],
                "summary": "List packages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Packages"],
                "summary": "Create package",
                "parameters": [
                    {"name": "force", "in": "query", "type": "boolean"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePackageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate package", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/packages/next-id": {
            "get": {
                "tags": ["Packages"],
                "summary": "Next package identifier for a category",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string", "enum": ["General", "Senior"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/packages/{id}": {
            "get": {
                "tags": ["Packages"],
                "summary": "Get package",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Packages"],
                "summary": "Delete package",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/sales": {
            "post": {
                "tags": ["Sales"],
                "summary": "Record a package sale",
                "description": "A non-unlimited package credits the customer's class balance with the package's class count.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSaleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Customer or package not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/sales/next-id": {
            "get": {
                "tags": ["Sales"],
                "summary": "Next sale identifier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/sales/{id}": {
            "get": {
                "tags": ["Sales"],
                "summary": "Get sale",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Check a session's attendees in",
                "description": "Responds 409 NEEDS_CONFIRM when the session is off-schedule or an attendee lacks balance; resubmit with force=true to commit.",
                "parameters": [
                    {"name": "force", "in": "query", "type": "boolean"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckInRequest"}}
                ],
                "responses": {
                    "201": {"description": "Committed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Needs confirmation", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/attendance/next-id": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Next attendance identifier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/attendance/classes-by-instructor": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List an instructor's classes with their first weekly slot",
                "parameters": [
                    {"name": "instructorId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/reports/summary": {
            "get": {
                "tags": ["Reports"],
                "summary": "Studio record counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/reports/summary/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the studio summary as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/reports/instructors/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Check-in tally for one instructor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/reports/classes/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Check-in tally for one class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/reports/customers/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Check-in tally for one customer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateCustomerRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "phone", "email"],
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "preferred_contact": {"type": "string", "enum": ["email", "phone"]},
                "senior": {"type": "boolean"}
            }
        },
        "CreateInstructorRequest": {
            "type": "object",
            "required": ["first_name", "last_name"],
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "preferred_contact": {"type": "string", "enum": ["email", "phone"]}
            }
        },
        "Slot": {
            "type": "object",
            "properties": {
                "day": {"type": "string", "enum": ["Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"]},
                "time": {"type": "string", "example": "09:00"},
                "duration": {"type": "integer", "example": 60}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "required": ["name", "instructor_id", "class_type", "slots"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "instructor_id": {"type": "string"},
                "class_type": {"type": "string", "enum": ["General", "Special"]},
                "pay_rate": {"type": "number"},
                "description": {"type": "string"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/Slot"}}
            }
        },
        "CreatePackageRequest": {
            "type": "object",
            "required": ["name", "category", "start_date", "end_date"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string", "enum": ["General", "Senior"]},
                "class_type": {"type": "string", "enum": ["General", "Special"]},
                "num_classes": {"description": "1, 4, 10 or the string \"unlimited\""},
                "start_date": {"type": "string", "example": "2025-01-01"},
                "end_date": {"type": "string", "example": "2025-12-31"},
                "price": {"type": "number"}
            }
        },
        "CreateSaleRequest": {
            "type": "object",
            "required": ["customer_id", "package_id"],
            "properties": {
                "id": {"type": "string"},
                "customer_id": {"type": "string"},
                "package_id": {"type": "string"},
                "amount_paid": {"type": "number"},
                "payment_mode": {"type": "string", "enum": ["cash", "card", "check", "zelle", "venmo", "other"]},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"}
            }
        },
        "Attendee": {
            "type": "object",
            "required": ["customer_id"],
            "properties": {
                "customer_id": {"type": "string"},
                "package_id": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "CheckInRequest": {
            "type": "object",
            "required": ["class_id", "instructor_id", "occurred_at", "attendees"],
            "properties": {
                "class_id": {"type": "string"},
                "instructor_id": {"type": "string"},
                "occurred_at": {"type": "string", "example": "2025-06-02T09:00"},
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/Attendee"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
