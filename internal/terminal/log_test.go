package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/dealpipeline/dbinit/internal/utils/test/assert"

	"github.com/fatih/color"
)

var testTime = time.Date(1989, 6, 22, 1, 23, 45, 0, time.UTC)

func TestLogPrint(t *testing.T) {
	color.NoColor = true

	for _, tc := range []struct {
		description  string
		log          Log
		expectedText string
		expectedJSON string
	}{
		{
			description:  "a text log",
			log:          NewTextLog("MongoDB initialized %s", "successfully"),
			expectedText: "01:23:45 UTC INFO  MongoDB initialized successfully",
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"info","message":"MongoDB initialized successfully"}`,
		},
		{
			description:  "a debug log",
			log:          NewDebugLog("%s", "100% done"),
			expectedText: "01:23:45 UTC DEBUG 100% done",
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"debug","message":"100% done"}`,
		},
		{
			description:  "a warning log",
			log:          NewWarningLog("no password set"),
			expectedText: "01:23:45 UTC WARN  no password set",
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"warn","message":"no password set"}`,
		},
		{
			description:  "an error log",
			log:          NewErrorLog(errors.New("something bad happened")),
			expectedText: "01:23:45 UTC ERROR something bad happened",
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"error","err":"something bad happened"}`,
		},
		{
			description: "a json log",
			log:         NewJSONLog("Resolved configuration", map[string]interface{}{"database": "deal_pipeline_db"}),
			expectedText: `01:23:45 UTC INFO  Resolved configuration
{
  "database": "deal_pipeline_db"
}`,
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"info","message":"Resolved configuration","doc":{"database":"deal_pipeline_db"}}`,
		},
		{
			description: "a list log",
			log:         NewListLog("Collections", "deals", "users"),
			expectedText: `01:23:45 UTC INFO  Collections
  deals
  users`,
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"info","message":"Collections","data":["deals","users"]}`,
		},
		{
			description: "a table log",
			log: NewTableLog("Verified database deal_pipeline_db", []string{"Check", "Status"},
				map[string]interface{}{"Check": "collection deals", "Status": "ok"},
				map[string]interface{}{"Check": "index x", "Status": errors.New("FAILED")},
			),
			expectedText: `01:23:45 UTC INFO  Verified database deal_pipeline_db
  Check             Status
  ----------------  ------
  collection deals  ok
  index x           FAILED`,
			expectedJSON: `{"time":"1989-06-22T01:23:45Z","level":"info","message":"Verified database deal_pipeline_db",` +
				`"headers":["Check","Status"],"data":[{"Check":"collection deals","Status":"ok"},{"Check":"index x","Status":"FAILED"}]}`,
		},
	} {
		t.Run("Should print "+tc.description, func(t *testing.T) {
			tc.log.Time = testTime

			text, err := tc.log.Print(OutputFormatText)
			assert.Nil(t, err)
			assert.Equal(t, tc.expectedText, text)

			json, err := tc.log.Print(OutputFormatJSON)
			assert.Nil(t, err)
			assert.Equal(t, tc.expectedJSON, json)
		})
	}

	t.Run("Should keep a message without args as is", func(t *testing.T) {
		format := "100% done"
		message, err := newTextMessage(format).Message()
		assert.Nil(t, err)
		assert.Equal(t, "100% done", message)
	})

	t.Run("Should fail to print a table without headers", func(t *testing.T) {
		_, err := NewTableLog("empty", nil).Print(OutputFormatText)
		assert.Equal(t, errors.New("cannot create a table without headers"), err)
	})

	t.Run("Should fail to print an unsupported output format", func(t *testing.T) {
		_, err := NewTextLog("hello").Print(OutputFormat("yaml"))
		assert.Equal(t, errors.New("unsupported output format type: yaml"), err)
	})
}
