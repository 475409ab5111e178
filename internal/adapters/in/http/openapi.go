package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// SwaggerInstance is the swag registry name of the API document.
const SwaggerInstance = "dispatch"

//go:embed openapi.json
var openAPIDocument []byte

func init() {
	// the document is plain JSON, so template delimiters must not collide with "}}"
	swag.Register(SwaggerInstance, &swag.Spec{
		InfoInstanceName: SwaggerInstance,
		SwaggerTemplate:  string(openAPIDocument),
		LeftDelim:        "{%",
		RightDelim:       "%}",
	})
}

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid API document: %w", err)
	}
	return doc, nil
}

func registerDocs(e *echo.Echo) {
	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstance)))
}
