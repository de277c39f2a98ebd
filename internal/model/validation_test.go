package model

import (
	"strings"
	"testing"
)

// ============================================================================
// CreatePaymentRequest Tests
// ============================================================================

func validPaymentRequest() *CreatePaymentRequest {
	return &CreatePaymentRequest{
		ReferenceType: "booking",
		ReferenceID:   "2f7a24d8-9c1b-4f6e-8a3d-5b0c9e1f7a24",
		Amount:        "150.00",
		Currency:      "USD",
		Method:        "card",
	}
}

func TestCreatePaymentRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	errs := validPaymentRequest().Validate()
	if len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreatePaymentRequest_Validate_BadReferenceType(t *testing.T) {
	t.Parallel()

	req := validPaymentRequest()
	req.ReferenceType = "invoice"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_REFERENCE_TYPE" {
		t.Errorf("expected INVALID_REFERENCE_TYPE, got %v", errs)
	}
}

func TestCreatePaymentRequest_Validate_BadReferenceID(t *testing.T) {
	t.Parallel()

	req := validPaymentRequest()
	req.ReferenceID = "not-a-uuid"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_REFERENCE_ID" {
		t.Errorf("expected INVALID_REFERENCE_ID, got %v", errs)
	}
}

func TestCreatePaymentRequest_Validate_NegativeAmount(t *testing.T) {
	t.Parallel()

	req := validPaymentRequest()
	req.Amount = "-10"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_AMOUNT" {
		t.Errorf("expected INVALID_AMOUNT, got %v", errs)
	}
}

func TestCreatePaymentRequest_Validate_ZeroAmount(t *testing.T) {
	t.Parallel()

	req := validPaymentRequest()
	req.Amount = "0"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_AMOUNT" {
		t.Errorf("expected INVALID_AMOUNT, got %v", errs)
	}
}

func TestCreatePaymentRequest_Validate_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	req := &CreatePaymentRequest{
		ReferenceType: "invoice",
		ReferenceID:   "nope",
		Amount:        "abc",
		Currency:      "BTC",
		Method:        "iou",
	}

	errs := req.Validate()
	if len(errs) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(errs), errs)
	}
}

// ============================================================================
// PaymentFilter Tests
// ============================================================================

func TestPaymentFilter_Validate_LimitBounds(t *testing.T) {
	t.Parallel()

	for _, limit := range []int{0, -1, 101} {
		f := &PaymentFilter{Limit: limit}
		errs := f.Validate()
		if len(errs) == 0 || errs[0].Code != "INVALID_LIMIT" {
			t.Errorf("limit %d: expected INVALID_LIMIT, got %v", limit, errs)
		}
	}

	f := &PaymentFilter{Limit: 100}
	if errs := f.Validate(); len(errs) > 0 {
		t.Errorf("limit 100 should be valid, got %v", errs)
	}
}

func TestPaymentFilter_Validate_DateKeys(t *testing.T) {
	t.Parallel()

	f := &PaymentFilter{Limit: 20, StartDate: "2024-13-01"}
	errs := f.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_START_DATE" {
		t.Errorf("expected INVALID_START_DATE, got %v", errs)
	}
}

// ============================================================================
// CreateShiftRequest Tests
// ============================================================================

func validShiftRequest() *CreateShiftRequest {
	return &CreateShiftRequest{
		StaffID:      "0b1e7f3a-2d4c-4e8b-9a6f-1c3d5e7f9b1e",
		Role:         "front_desk",
		StartTime:    "2024-06-01T08:00:00Z",
		EndTime:      "2024-06-01T16:00:00Z",
		BreakMinutes: 45,
	}
}

func TestCreateShiftRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	if errs := validShiftRequest().Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateShiftRequest_Validate_BadStaffID(t *testing.T) {
	t.Parallel()

	req := validShiftRequest()
	req.StaffID = "staff-7"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_STAFF_ID" {
		t.Errorf("expected INVALID_STAFF_ID, got %v", errs)
	}
}

func TestCreateShiftRequest_Validate_EndBeforeStart(t *testing.T) {
	t.Parallel()

	req := validShiftRequest()
	req.StartTime = "2024-06-01T16:00:00Z"
	req.EndTime = "2024-06-01T08:00:00Z"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_TIME_RANGE" {
		t.Errorf("expected INVALID_TIME_RANGE, got %v", errs)
	}
}

func TestCreateShiftRequest_Validate_TooShort(t *testing.T) {
	t.Parallel()

	req := validShiftRequest()
	req.EndTime = "2024-06-01T08:15:00Z"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "SHIFT_TOO_SHORT" {
		t.Errorf("expected SHIFT_TOO_SHORT, got %v", errs)
	}
}

func TestCreateShiftRequest_Validate_TooLong(t *testing.T) {
	t.Parallel()

	req := validShiftRequest()
	req.EndTime = "2024-06-02T08:00:00Z"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "SHIFT_TOO_LONG" {
		t.Errorf("expected SHIFT_TOOLONG-style error, got %v", errs)
	}
}

func TestCreateShiftRequest_Validate_BreakBounds(t *testing.T) {
	t.Parallel()

	req := validShiftRequest()
	req.BreakMinutes = 121

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_BREAK_MINUTES" {
		t.Errorf("expected INVALID_BREAK_MINUTES, got %v", errs)
	}
}

func TestCreateShiftRequest_Validate_UnparseableTimesSkipSpanCheck(t *testing.T) {
	t.Parallel()

	req := validShiftRequest()
	req.StartTime = "yesterday"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_START_TIME" {
		t.Errorf("expected only INVALID_START_TIME, got %v", errs)
	}
}

// ============================================================================
// IssueTicketRequest Tests
// ============================================================================

func validTicketRequest() *IssueTicketRequest {
	return &IssueTicketRequest{
		PoolID:  "6c2a9e4d-8f1b-4c7e-b3a5-9d0e2f4a6c2a",
		GuestID: "1a3c5e7f-9b2d-4f6a-8c0e-3d5f7a9b1a3c",
		Date:    "2024-07-15",
		Adults:  2,
	}
}

func TestIssueTicketRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	if errs := validTicketRequest().Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestIssueTicketRequest_Validate_EmptyParty(t *testing.T) {
	t.Parallel()

	req := validTicketRequest()
	req.Adults = 0

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_HEADCOUNT" {
		t.Errorf("expected INVALID_HEADCOUNT, got %v", errs)
	}
}

func TestIssueTicketRequest_Validate_BadDate(t *testing.T) {
	t.Parallel()

	req := validTicketRequest()
	req.Date = "15/07/2024"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_DATE" {
		t.Errorf("expected INVALID_DATE, got %v", errs)
	}
}

// ============================================================================
// CreatePackageRequest Tests
// ============================================================================

func validPackageRequest() *CreatePackageRequest {
	return &CreatePackageRequest{
		Code:               "SUMMER24",
		Name:               "Summer Escape",
		BasePrice:          "100",
		DiscountPercentage: "10",
		RedemptionLimit:    50,
		ValidFrom:          "2024-06-01T00:00:00Z",
		ValidTo:            "2024-09-01T00:00:00Z",
	}
}

func TestCreatePackageRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	if errs := validPackageRequest().Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreatePackageRequest_Validate_DiscountBounds(t *testing.T) {
	t.Parallel()

	req := validPackageRequest()
	req.DiscountPercentage = "101"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_DISCOUNT" {
		t.Errorf("expected INVALID_DISCOUNT, got %v", errs)
	}
}

func TestCreatePackageRequest_Validate_ValidityRange(t *testing.T) {
	t.Parallel()

	req := validPackageRequest()
	req.ValidFrom = "2024-09-01T00:00:00Z"
	req.ValidTo = "2024-06-01T00:00:00Z"

	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_VALIDITY_RANGE" {
		t.Errorf("expected INVALID_VALIDITY_RANGE, got %v", errs)
	}
}

// ============================================================================
// CreateDocumentRequest Tests
// ============================================================================

func TestCreateDocumentRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateDocumentRequest{
		Path:      "/guides/spa-menu.pdf",
		Title:     "Spa Menu",
		MimeType:  "application/pdf",
		SizeBytes: 32_768,
	}
	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateDocumentRequest_Validate_RelativePath(t *testing.T) {
	t.Parallel()

	req := &CreateDocumentRequest{
		Path:      "guides/../etc",
		Title:     "x",
		MimeType:  "text/plain",
		SizeBytes: 10,
	}
	errs := req.Validate()
	found := false
	for _, e := range errs {
		if e.Code == "INVALID_PATH" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected INVALID_PATH, got %v", errs)
	}
}

func TestCreateDocumentRequest_Validate_SizeBound(t *testing.T) {
	t.Parallel()

	req := &CreateDocumentRequest{
		Path:      "/big.bin",
		Title:     "Big",
		MimeType:  "application/octet-stream",
		SizeBytes: MaxDocumentSizeBytes + 1,
	}
	errs := req.Validate()
	if len(errs) != 1 || errs[0].Code != "INVALID_SIZE" {
		t.Errorf("expected INVALID_SIZE, got %v", errs)
	}
}

// ============================================================================
// Shared check tests
// ============================================================================

func TestCheckUUID_RejectsNonCanonicalForms(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"2f7a24d89c1b4f6e8a3d5b0c9e1f7a24",                     // no hyphens
		"{2f7a24d8-9c1b-4f6e-8a3d-5b0c9e1f7a24}",               // braced
		"urn:uuid:2f7a24d8-9c1b-4f6e-8a3d-5b0c9e1f7a24",        // URN
		strings.ToUpper("not-a-uuid-at-all-not-a-uuid-at-all"), // junk of right-ish length
	}
	for _, c := range cases {
		if fe := CheckUUID("id", "INVALID_ID", c); fe == nil {
			t.Errorf("expected %q to be rejected", c)
		}
	}

	if fe := CheckUUID("id", "INVALID_ID", "2f7a24d8-9c1b-4f6e-8a3d-5b0c9e1f7a24"); fe != nil {
		t.Errorf("canonical form rejected: %v", fe)
	}
}

func TestCheckRangePair_TouchingIsRejected(t *testing.T) {
	t.Parallel()

	at, _ := ParseInstant("t", "X", "2024-06-01T08:00:00Z")
	if fe := CheckRangePair("end", "INVALID_TIME_RANGE", at, at); fe == nil {
		t.Error("expected zero-length range to be rejected")
	}
}
