package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates a dependency is unavailable (open circuit).
	ErrKeyServiceUnavailable = "error.service_unavailable"

	// ErrKeySessionNotFound indicates an unknown or expired formulation session.
	ErrKeySessionNotFound = "error.session_not_found"
	// ErrKeyInvalidSlot indicates a slot outside the material slot range.
	ErrKeyInvalidSlot = "error.validation.slot"
	// ErrKeyInvalidPercentage indicates a negative, non-finite or out-of-range percentage.
	ErrKeyInvalidPercentage = "error.validation.percentage"
	// ErrKeyInvalidAttribute indicates a manual attribute outside its physical range.
	ErrKeyInvalidAttribute = "error.validation.attribute"
	// ErrKeyInvalidOptions indicates invalid session options.
	ErrKeyInvalidOptions = "error.validation.options"
	// ErrKeyEmptyEntryName indicates a percentage given without a material name.
	ErrKeyEmptyEntryName = "error.validation.entry_name"
	// ErrKeyMaterialNotFound indicates a material name with no catalog match.
	ErrKeyMaterialNotFound = "error.material_not_found"
	// ErrKeyNotInferable indicates no inference rule matched a material name.
	ErrKeyNotInferable = "error.material_not_inferable"
	// ErrKeyGuideNotFound indicates no guide exists for a beverage type and flavor.
	ErrKeyGuideNotFound = "error.guide_not_found"
	// ErrKeyEntryChanged indicates the entry was edited while an estimate was running.
	ErrKeyEntryChanged = "error.entry_changed"
	// ErrKeyEstimatorUnavailable indicates the estimation gateway is disabled or unreachable.
	ErrKeyEstimatorUnavailable = "error.estimator_unavailable"
	// ErrKeyEstimateRejected indicates the gateway returned an unusable estimate.
	ErrKeyEstimateRejected = "error.estimate_rejected"
	// ErrKeyCatalogReloadUnavailable indicates the catalog has no reload source.
	ErrKeyCatalogReloadUnavailable = "error.catalog_reload_unavailable"
	// ErrKeyCatalogReloadFailed indicates the catalog source could not be read.
	ErrKeyCatalogReloadFailed = "error.catalog_reload_failed"
	// ErrKeyIdempotencyMismatch indicates an Idempotency-Key reused with a different body.
	ErrKeyIdempotencyMismatch = "error.idempotency_mismatch"
	// ErrKeyIdempotencyInFlight indicates a retry while the first request is still running.
	ErrKeyIdempotencyInFlight = "error.idempotency_in_flight"
)
