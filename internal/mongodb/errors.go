package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// set of server error codes the bootstrap reacts to
// see: https://github.com/mongodb/mongo/blob/master/src/mongo/base/error_codes.yml
const (
	CodeUnauthorized          int32 = 13
	CodeNamespaceExists       int32 = 48
	CodeIndexOptionsConflict  int32 = 85
	CodeIndexKeySpecsConflict int32 = 86
	CodeDuplicateKey          int32 = 11000
	CodeUserAlreadyExists     int32 = 51003
)

// ErrorCode extracts the server error code from a driver error
func ErrorCode(err error) (int32, bool) {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code, true
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		if len(writeErr.WriteErrors) > 0 {
			return int32(writeErr.WriteErrors[0].Code), true
		}
		if writeErr.WriteConcernError != nil {
			return int32(writeErr.WriteConcernError.Code), true
		}
	}
	return 0, false
}

// HasErrorCode reports whether the driver error carries any of the provided codes
func HasErrorCode(err error, codes ...int32) bool {
	code, ok := ErrorCode(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// IsConnectionError reports whether the error was caused by an unreachable server
func IsConnectionError(err error) bool {
	var connErr ConnectionError
	if errors.As(err, &connErr) {
		return true
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("NetworkError")
	}
	return false
}
