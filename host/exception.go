package host

import "fmt"

// Exception is an error code reported by the host.
type Exception uint32

// Host exception codes.
const (
	ExceptionNone Exception = iota
	ExceptionError
	ExceptionSizeMismatch
	ExceptionUnrecognizedID
	ExceptionUnopened
	ExceptionVersionMismatch
	ExceptionTooManyGroups
	ExceptionNameUnrecognized
	ExceptionTooManyEventNames
	ExceptionEventIDDuplicate
	ExceptionTooManyMaps
	ExceptionTooManyObjects
	ExceptionTooManyRequests
	ExceptionWeatherInvalidPort
	ExceptionWeatherInvalidMetar
	ExceptionWeatherUnableToGetObservation
	ExceptionWeatherUnableToCreateStation
	ExceptionWeatherUnableToRemoveStation
	ExceptionInvalidDataType
	ExceptionInvalidDataSize
	ExceptionDataError
	ExceptionInvalidArray
	ExceptionCreateObjectFailed
	ExceptionLoadFlightplanFailed
	ExceptionOperationInvalidForObjectType
	ExceptionIllegalOperation
	ExceptionAlreadySubscribed
	ExceptionInvalidEnum
	ExceptionDefinitionError
	ExceptionDuplicateID
	ExceptionDatumID
	ExceptionOutOfBounds
	ExceptionAlreadyCreated
	ExceptionObjectOutsideRealityBubble
	ExceptionObjectContainer
	ExceptionObjectAI
	ExceptionObjectATC
	ExceptionObjectSchedule
)

var exceptionNames = [...]string{
	"NONE",
	"ERROR",
	"SIZE_MISMATCH",
	"UNRECOGNIZED_ID",
	"UNOPENED",
	"VERSION_MISMATCH",
	"TOO_MANY_GROUPS",
	"NAME_UNRECOGNIZED",
	"TOO_MANY_EVENT_NAMES",
	"EVENT_ID_DUPLICATE",
	"TOO_MANY_MAPS",
	"TOO_MANY_OBJECTS",
	"TOO_MANY_REQUESTS",
	"WEATHER_INVALID_PORT",
	"WEATHER_INVALID_METAR",
	"WEATHER_UNABLE_TO_GET_OBSERVATION",
	"WEATHER_UNABLE_TO_CREATE_STATION",
	"WEATHER_UNABLE_TO_REMOVE_STATION",
	"INVALID_DATA_TYPE",
	"INVALID_DATA_SIZE",
	"DATA_ERROR",
	"INVALID_ARRAY",
	"CREATE_OBJECT_FAILED",
	"LOAD_FLIGHTPLAN_FAILED",
	"OPERATION_INVALID_FOR_OBJECT_TYPE",
	"ILLEGAL_OPERATION",
	"ALREADY_SUBSCRIBED",
	"INVALID_ENUM",
	"DEFINITION_ERROR",
	"DUPLICATE_ID",
	"DATUM_ID",
	"OUT_OF_BOUNDS",
	"ALREADY_CREATED",
	"OBJECT_OUTSIDE_REALITY_BUBBLE",
	"OBJECT_CONTAINER",
	"OBJECT_AI",
	"OBJECT_ATC",
	"OBJECT_SCHEDULE",
}

// String returns the host's name of the exception, or "UNKNOWN".
func (e Exception) String() string {
	if int(e) < len(exceptionNames) {
		return exceptionNames[e]
	}

	return "UNKNOWN"
}

func (e Exception) Error() string {
	return fmt.Sprintf("host exception %d: %s", uint32(e), e.String())
}

// LookupException finds an exception by its host name.
func LookupException(name string) (Exception, bool) {
	for i, n := range exceptionNames {
		if n == name {
			return Exception(i), true
		}
	}

	return 0, false
}
