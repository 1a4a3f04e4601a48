package http

import (
	"encoding/json"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/qaztour/qaztour-api/internal/domain"
)

const (
	requestBodyLogKey = "http.request.body.summary"
	maxLoggedBody     = 1024
)

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			payload := struct {
				Time      string      `json:"time"`
				UserUUID  string      `json:"user_uuid"`
				Method    string      `json:"method"`
				URI       string      `json:"uri"`
				Status    int         `json:"status"`
				LatencyMS int64       `json:"latency_ms"`
				Body      interface{} `json:"body,omitempty"`
				Error     string      `json:"error,omitempty"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserUUID:  userID,
				Method:    v.Method,
				URI:       v.URI,
				Status:    v.Status,
				LatencyMS: v.Latency.Milliseconds(),
			}
			if summary := c.Get(requestBodyLogKey); summary != nil {
				payload.Body = summary
			}
			if v.Error != nil {
				payload.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, _ []byte) {
		contentType := c.Request().Header.Get(echo.HeaderContentType)
		if summary := summarizeBody(reqBody, contentType); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
	}))
}

// summarizeBody produces a log-safe view of a JSON request body. Credential
// fields are redacted and non-JSON payloads (multipart uploads mostly) are
// reduced to a marker.
func summarizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(lowered, "application/json") && !json.Valid(body) {
		return "non-json"
	}
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "non-json"
	}
	return redactJSON(data, "")
}

func redactJSON(value interface{}, keyHint string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			lowerKey := strings.ToLower(key)
			if strings.Contains(lowerKey, "password") ||
				strings.Contains(lowerKey, "card") ||
				strings.Contains(lowerKey, "cvc") {
				result[key] = "redacted"
				continue
			}
			result[key] = redactJSON(val, lowerKey)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = redactJSON(item, keyHint)
		}
		return result
	case string:
		if keyHint != "" && strings.Contains(keyHint, "password") {
			return "redacted"
		}
		return clampString(v)
	default:
		return v
	}
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
