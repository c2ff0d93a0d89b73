package classifier

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/spentlog/importer/pkg/database"
)

// RuleSet is the per-user classification input, loaded once per import and
// passed by value; the classifier keeps no state between calls.
type RuleSet struct {
	Rules              []database.CategoryRule // ordered by Position
	Categories         []database.Category
	FallbackCategoryID int64
}

// Classify resolves a category id and the deleted flag for one transaction.
// Stage one walks the user's rules in order: the first category match wins,
// but the scan continues for MarksDeleted rules, which act independently.
// Stage two falls back to the static MCC table, then to a keyword lookup over
// the user's top-level categories. The result is never zero: unmatched
// transactions land in the fallback category.
func Classify(set RuleSet, description string, mcc int) (int64, bool) {
	categoryID := int64(0)
	deleted := false

	for _, rule := range set.Rules {
		if !ruleMatches(rule, description, mcc) {
			continue
		}

		if rule.MarksDeleted {
			deleted = true
		}

		if categoryID == 0 && rule.TargetCategoryID != 0 {
			categoryID = rule.TargetCategoryID
		}
	}

	if categoryID != 0 {
		return categoryID, deleted
	}

	if mcc != 0 {
		if name, ok := mccCategoryName(mcc); ok {
			if id, found := categoryByName(set, name); found {
				return id, deleted
			}
		}
	}

	if id, found := categoryByKeyword(set, description); found {
		return id, deleted
	}

	return set.FallbackCategoryID, deleted
}

func ruleMatches(rule database.CategoryRule, description string, mcc int) bool {
	switch rule.MatchKind {
	case database.MatchDescriptionContains:
		return rule.Pattern != "" && strings.Contains(description, rule.Pattern)
	case database.MatchMccRange:
		return mccInRange(rule.Pattern, mcc)
	default:
		return false
	}
}

// mccInRange matches patterns of the form "4121" or "4100-4200".
func mccInRange(pattern string, mcc int) bool {
	if mcc == 0 {
		return false
	}

	from, to, ok := splitRange(pattern)
	if !ok {
		return false
	}

	return mcc >= from && mcc <= to
}

func splitRange(pattern string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(pattern), "-", 2)

	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}

	if len(parts) == 1 {
		return from, from, true
	}

	to, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}

	return from, to, true
}

func categoryByName(set RuleSet, name string) (int64, bool) {
	category, found := lo.Find(set.Categories, func(c database.Category) bool {
		return c.ParentID == nil && c.Name == name
	})
	if !found {
		return 0, false
	}

	return category.ID, true
}

// categoryByKeyword matches a top-level category whose name contains one of
// the merchant words from the description. Matching is case-sensitive on
// purpose: merchant names come through in the statement's own casing and a
// loose match here misfiles more than it fixes.
func categoryByKeyword(set RuleSet, description string) (int64, bool) {
	for _, word := range strings.Fields(description) {
		if len([]rune(word)) < 4 {
			continue
		}

		for _, category := range set.Categories {
			if category.ParentID != nil {
				continue
			}

			if strings.Contains(category.Name, word) {
				return category.ID, true
			}
		}
	}

	return 0, false
}
