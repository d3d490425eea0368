package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func entitiesOfType(entities []Entity, entityType EntityType) []Entity {
	var out []Entity
	for _, e := range entities {
		if e.Type == entityType {
			out = append(out, e)
		}
	}
	return out
}

func entityValues(entities []Entity) []string {
	var values []string
	for _, e := range entities {
		values = append(values, e.Value)
	}
	return values
}

func TestExtractor_Extract_FinancialDocument(t *testing.T) {
	extractor := NewExtractor()

	text := "Revenue grew to $150,000 on March 3, 2024 for Acme Corp."
	entities := extractor.Extract(text)

	amounts := entitiesOfType(entities, EntityAmount)
	assert.Equal(t, []string{"$150,000"}, entityValues(amounts))
	assert.Equal(t, 0.95, amounts[0].Confidence)

	dates := entitiesOfType(entities, EntityDate)
	assert.Equal(t, []string{"March 3, 2024"}, entityValues(dates))
	assert.Equal(t, 0.90, dates[0].Confidence)

	companies := entitiesOfType(entities, EntityCompany)
	assert.Equal(t, []string{"Acme Corp."}, entityValues(companies))
	assert.Equal(t, 0.85, companies[0].Confidence)
}

func TestExtractor_Extract_AmountFormats(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"grouped with cents", "invoiced $150,000.00 total", []string{"$150,000.00"}},
		{"plain integer", "fee of $500 applies", []string{"$500"}},
		{"space after sign", "balance $ 1,200.50 remaining", []string{"$ 1,200.50"}},
		{"multiple amounts", "$100 then $2,000 then $30", []string{"$100", "$2,000", "$30"}},
		{"no amounts", "no money mentioned here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractor.Extract(tt.text)
			amounts := entitiesOfType(entities, EntityAmount)
			assert.Equal(t, tt.expected, entityValues(amounts))
		})
	}
}

func TestExtractor_Extract_DateFormats(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"month name", "due January 15, 2024 at latest", []string{"January 15, 2024"}},
		{"abbreviated month", "signed Feb 3 2023 in person", []string{"Feb 3 2023"}},
		{"slash format", "filed on 12/31/2024 end of year", []string{"12/31/2024"}},
		{"iso format", "effective 2024-06-01 onward", []string{"2024-06-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractor.Extract(tt.text)
			dates := entitiesOfType(entities, EntityDate)
			assert.Equal(t, tt.expected, entityValues(dates))
		})
	}
}

func TestExtractor_Extract_CompanySuffixes(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"corp with period", "Acme Corp. invoiced the client", []string{"Acme Corp."}},
		{"full corporation", "Globex Corporation filed its report", []string{"Globex Corporation"}},
		{"multiword name", "First National Company holds the account", []string{"First National Company"}},
		{"llc", "payment from Widget Works LLC received", []string{"Widget Works LLC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractor.Extract(tt.text)
			companies := entitiesOfType(entities, EntityCompany)
			assert.Equal(t, tt.expected, entityValues(companies))
		})
	}
}

func TestExtractor_Extract_PersonNotCompany(t *testing.T) {
	extractor := NewExtractor()

	entities := extractor.Extract("Acme Corp. billed the client; please contact John Smith directly.")

	persons := entitiesOfType(entities, EntityPerson)
	assert.Equal(t, []string{"John Smith"}, entityValues(persons))
	assert.Equal(t, 0.75, persons[0].Confidence)

	// The company match must not reappear as a person.
	for _, p := range persons {
		assert.NotContains(t, p.Value, "Acme")
	}
}

func TestExtractor_Extract_AccountNumbers(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"hash prefix", "debited from Account #12345678 yesterday", []string{"12345678"}},
		{"colon prefix", "acct: 9876543210 was closed", []string{"9876543210"}},
		{"too short", "Account 123 is invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractor.Extract(tt.text)
			accounts := entitiesOfType(entities, EntityAccount)
			assert.Equal(t, tt.expected, entityValues(accounts))
		})
	}
}

func TestExtractor_Extract_Context(t *testing.T) {
	extractor := NewExtractor()

	t.Run("wrapped with ellipses", func(t *testing.T) {
		text := strings.Repeat("x", 50) + " $500 " + strings.Repeat("y", 50)
		entities := extractor.Extract(text)
		amounts := entitiesOfType(entities, EntityAmount)
		assert.Len(t, amounts, 1)
		assert.True(t, strings.HasPrefix(amounts[0].Context, "..."))
		assert.True(t, strings.HasSuffix(amounts[0].Context, "..."))
		assert.Contains(t, amounts[0].Context, "$500")
	})

	t.Run("clipped at text start", func(t *testing.T) {
		entities := extractor.Extract("$500 owed")
		amounts := entitiesOfType(entities, EntityAmount)
		assert.Len(t, amounts, 1)
		assert.Equal(t, "...$500 owed...", amounts[0].Context)
	})
}

func TestExtractor_Extract_KeepsDuplicates(t *testing.T) {
	extractor := NewExtractor()

	entities := extractor.Extract("charged $500 and later another $500")
	amounts := entitiesOfType(entities, EntityAmount)
	assert.Len(t, amounts, 2)
	assert.Equal(t, amounts[0].Value, amounts[1].Value)
}

func TestExtractor_Extract_EmptyText(t *testing.T) {
	extractor := NewExtractor()
	assert.Empty(t, extractor.Extract(""))
}
