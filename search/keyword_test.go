package search

import (
	"testing"

	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(first, last, email, description string) *core.Record {
	return &core.Record{
		Id:          core.NewRecordID(),
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Description: description,
	}
}

func document(title, content string) *core.Document {
	return &core.Document{
		Id:      core.NewDocumentID(),
		OwnerId: "record-owner",
		Title:   title,
		Content: content,
	}
}

func TestScoreRecords(t *testing.T) {
	t.Run("exact email match scores 1.0", func(t *testing.T) {
		candidates := []*core.Record{
			record("John", "Doe", "john.doe@example.com", "consultant"),
		}

		results := ScoreRecords("john.doe@example.com", candidates, 10)
		require.Len(t, results, 1)
		assert.Equal(t, 1.0, results[0].Score)
		assert.Equal(t, MatchFieldEmail, results[0].MatchField)
	})

	t.Run("exact name match", func(t *testing.T) {
		candidates := []*core.Record{
			record("John", "Doe", "jd@example.com", ""),
		}

		for _, query := range []string{"john", "Doe", "John Doe"} {
			results := ScoreRecords(query, candidates, 10)
			require.Len(t, results, 1, "query %q", query)
			assert.InDelta(t, 0.95, results[0].Score, 1e-9, "query %q", query)
			assert.Equal(t, MatchFieldName, results[0].MatchField, "query %q", query)
		}
	})

	t.Run("rule ordering is monotonic", func(t *testing.T) {
		// Same query, three records matched by progressively weaker rules
		exact := record("A", "B", "sales@example.com", "")
		prefix := record("C", "D", "sales-team@example.com", "")
		contains := record("E", "F", "eu-sales@example.com", "")

		results := ScoreRecords("sales@example.com", []*core.Record{contains, prefix, exact}, 10)
		require.Len(t, results, 2)
		assert.Equal(t, exact, results[0].Entity)
		assert.Equal(t, 1.0, results[0].Score)
		assert.Equal(t, contains, results[1].Entity)

		results = ScoreRecords("sales", []*core.Record{contains, prefix, exact}, 10)
		require.Len(t, results, 3)
		assert.Equal(t, exact, results[0].Entity)
		assert.Equal(t, prefix, results[1].Entity)
		assert.Equal(t, contains, results[2].Entity)
		assert.Greater(t, results[0].Score, results[1].Score)
		assert.Greater(t, results[1].Score, results[2].Score)
	})

	t.Run("prefix name beats contains email", func(t *testing.T) {
		byName := record("Marta", "Kovacs", "mk@example.com", "")
		byEmail := record("X", "Y", "omar.tamm@example.com", "")

		results := ScoreRecords("mar", []*core.Record{byEmail, byName}, 10)
		require.Len(t, results, 2)
		assert.Equal(t, byName, results[0].Entity)
		assert.Equal(t, MatchFieldName, results[0].MatchField)
		assert.Equal(t, MatchFieldEmail, results[1].MatchField)
	})

	t.Run("description is the weakest field", func(t *testing.T) {
		candidates := []*core.Record{
			record("A", "B", "ab@example.com", "enjoys woodworking"),
		}

		results := ScoreRecords("woodworking", candidates, 10)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.5, results[0].Score, 1e-9)
		assert.Equal(t, MatchFieldDescription, results[0].MatchField)
	})

	t.Run("scores stay within [0,1]", func(t *testing.T) {
		candidates := []*core.Record{
			record("John", "Doe", "john@example.com", "john the consultant"),
			record("Johanna", "Doe", "johanna@example.com", ""),
		}

		for _, query := range []string{"john", "doe", "example", "consultant", "john doe"} {
			for _, result := range ScoreRecords(query, candidates, 10) {
				assert.GreaterOrEqual(t, result.Score, 0.0)
				assert.LessOrEqual(t, result.Score, 1.0)
			}
		}
	})

	t.Run("empty query returns empty", func(t *testing.T) {
		candidates := []*core.Record{record("A", "B", "ab@example.com", "")}

		assert.Empty(t, ScoreRecords("", candidates, 10))
		assert.Empty(t, ScoreRecords("   ", candidates, 10))
	})

	t.Run("non-matching candidates are excluded", func(t *testing.T) {
		candidates := []*core.Record{record("A", "B", "ab@example.com", "")}

		assert.Empty(t, ScoreRecords("zzz", candidates, 10))
	})

	t.Run("limit truncates", func(t *testing.T) {
		candidates := []*core.Record{
			record("Ann", "One", "ann1@example.com", ""),
			record("Ann", "Two", "ann2@example.com", ""),
			record("Ann", "Three", "ann3@example.com", ""),
		}

		results := ScoreRecords("ann", candidates, 2)
		assert.Len(t, results, 2)
	})
}

func TestScoreDocuments(t *testing.T) {
	t.Run("title ladder", func(t *testing.T) {
		exact := document("tax return", "irrelevant")
		prefix := document("tax return 2023", "irrelevant")
		contains := document("my tax return", "irrelevant")
		content := document("statement", "contains tax return inside")

		results := ScoreDocuments("tax return", []*core.Document{content, contains, prefix, exact}, 10)
		require.Len(t, results, 4)
		assert.Equal(t, exact, results[0].Entity)
		assert.Equal(t, 1.0, results[0].Score)
		assert.Equal(t, prefix, results[1].Entity)
		assert.InDelta(t, 0.9, results[1].Score, 1e-9)
		assert.Equal(t, contains, results[2].Entity)
		assert.InDelta(t, 0.7, results[2].Score, 1e-9)
		assert.Equal(t, content, results[3].Entity)
		assert.InDelta(t, 0.5, results[3].Score, 1e-9)

		assert.Equal(t, MatchFieldTitle, results[0].MatchField)
		assert.Equal(t, MatchFieldContent, results[3].MatchField)
	})

	t.Run("tax scenario", func(t *testing.T) {
		taxReturn := document("Tax Return 2023", "Forms and receipts.")
		bankStatement := document("Bank Statement", "Monthly account summary.")
		utilityBill := document("Utility Bill", "Electricity charges.")

		results := ScoreDocuments("tax", []*core.Document{bankStatement, taxReturn, utilityBill}, 10)
		require.Len(t, results, 1)
		assert.Equal(t, taxReturn, results[0].Entity)
		assert.Greater(t, results[0].Score, 0.0)
	})

	t.Run("word tier fallback", func(t *testing.T) {
		// No phrase match for "annual tax summary", two of three words hit
		doc := document("Notes", "annual figures and tax items")

		results := ScoreDocuments("annual tax summary", []*core.Document{doc}, 10)
		require.Len(t, results, 1)

		expected := 0.8 * (2.0 / 3.0) * 500.0 / 1000.0
		assert.InDelta(t, expected, results[0].Score, 1e-9)
		assert.Equal(t, MatchFieldContent, results[0].MatchField)
	})

	t.Run("word tier takes the stronger field, not the union", func(t *testing.T) {
		// One query word in the title, the other in the content: the score
		// reflects the best single field (1 of 2), not both combined
		doc := document("alpha notes", "beta figures")

		results := ScoreDocuments("alpha beta", []*core.Document{doc}, 10)
		require.Len(t, results, 1)

		expected := 0.8 * (1.0 / 2.0) * 500.0 / 1000.0
		assert.InDelta(t, expected, results[0].Score, 1e-9)
	})

	t.Run("word tier tags title when title matches more words", func(t *testing.T) {
		doc := document("quarterly revenue forecast", "misc")

		results := ScoreDocuments("quarterly forecast", []*core.Document{doc}, 10)
		require.Len(t, results, 1)
		assert.Equal(t, MatchFieldTitle, results[0].MatchField)
	})

	t.Run("no match excluded", func(t *testing.T) {
		doc := document("Notes", "nothing relevant")

		assert.Empty(t, ScoreDocuments("zebra", []*core.Document{doc}, 10))
	})

	t.Run("empty query returns empty", func(t *testing.T) {
		doc := document("Notes", "anything")

		assert.Empty(t, ScoreDocuments("  ", []*core.Document{doc}, 10))
	})

	t.Run("equal scores keep candidate order", func(t *testing.T) {
		first := document("alpha report", "x")
		second := document("alpha summary", "y")

		results := ScoreDocuments("alpha", []*core.Document{first, second}, 10)
		require.Len(t, results, 2)
		assert.Equal(t, first, results[0].Entity)
		assert.Equal(t, second, results[1].Entity)
	})
}
