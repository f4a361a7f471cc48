package datatables

const DefaultPageLength = 10

// page returns the requested window of the sequence. Offsets past the end give
// an empty page.
func page(records []Record, request *Request, defaultLength int) []Record {
	if !request.IsPaginationable() {
		return records
	}

	start := request.Start
	if start < 0 {
		start = 0
	}
	length := request.Length
	if length <= 0 {
		length = defaultLength
	}

	if start >= len(records) {
		return make([]Record, 0)
	}
	end := start + length
	if end > len(records) || end < start {
		end = len(records)
	}

	window := make([]Record, end-start)
	copy(window, records[start:end])
	return window
}
