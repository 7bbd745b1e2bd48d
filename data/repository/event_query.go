package repository

import (
	"fmt"
	"strconv"
	"strings"

	"events-scheduler/data/models"
)

// DefaultPageSize is used when a query does not name a per-page preference.
const DefaultPageSize = 10

// The per-page preference is one of a fixed enumerated set; anything else is
// rejected rather than passed through to LIMIT.
var pageSizes = map[int]bool{10: true, 20: true, 50: true, 100: true}

// ValidPageSize reports whether n is one of the allowed page sizes.
func ValidPageSize(n int) bool {
	return pageSizes[n]
}

// buildQueryClauses constructs formatted and parameterized sql clauses from
// the given query parameters. It returns the finished clause string, the
// values to be passed alongside the query, and the page size the clauses will
// return at most.
func buildQueryClauses(queryParams map[string]string, m models.Model) (string, []interface{}, int, error) {
	placeholderIndex := 1
	jsonMap := models.MapJsonTagsToDB(m)

	// Filtering
	whereClause, values, placeholderIndex, err := buildWhereClause(queryParams, placeholderIndex, jsonMap)
	if err != nil {
		return "", nil, 0, err
	}

	// Sorting
	sort, order, err := buildSortingClause(queryParams, jsonMap)
	if err != nil {
		return "", nil, 0, err
	}
	orderClause := fmt.Sprintf("ORDER BY %s %s", sort, order)

	// Pagination
	limit, offset, err := buildPaginationClause(queryParams)
	if err != nil {
		return "", nil, 0, err
	}
	paginationClause := fmt.Sprintf("LIMIT $%d OFFSET $%d", placeholderIndex, placeholderIndex+1)
	values = append(values, limit, offset)

	var clauses string
	if whereClause != "" {
		clauses = fmt.Sprintf("%s %s %s", whereClause, orderClause, paginationClause)
	} else {
		clauses = fmt.Sprintf("%s %s", orderClause, paginationClause)
	}

	return clauses, values, limit, nil
}

// buildWhereClause constructs a formatted and parameterized sql WHERE clause.
// It is a helper for buildQueryClauses. It returns the finished WHERE clause,
// the values to be ultimately passed alongside the query, and the current
// placeholder count. If there are no search conditions in the query parameters,
// it returns an empty string for the WHERE clause.
func buildWhereClause(queryParams map[string]string, phIndex int, jsonMap map[string]string) (whereClause string, values []interface{}, placeholderIndex int, err error) {
	whereClauseParts := []string{}
	values = []interface{}{}

	for key, value := range queryParams {
		// Skip these for later handling
		if key == "sortBy" || key == "page" || key == "perPage" {
			continue
		}

		// Parse the operator and db column name from the key
		operator, dbColumn, value, err := parseOperatorAndKey(key, value, jsonMap)
		if err != nil {
			return "", nil, 0, err
		}

		// The IN operator takes a list of values of variable length
		// (e.g. location_anyOf=Manor Hotel,Town Hall), so it is handled
		// separately.
		if operator == "IN" {
			whereClauseParts, values, phIndex, err = handleInOperator(key, value, phIndex, whereClauseParts, values, jsonMap)
			if err != nil {
				return "", nil, 0, err
			}
			continue
		}

		whereClauseParts = append(whereClauseParts, fmt.Sprintf("%s %s $%d", dbColumn, operator, phIndex))
		// Perform type conversion on numerical characters before appending to vals slice
		formattedVal := convertValueIfNumeric(value)
		values = append(values, formattedVal)
		phIndex++
	}

	whereClause = ""
	if len(whereClauseParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauseParts, " AND ")
	}

	return whereClause, values, phIndex, nil
}

// parseOperatorAndKey determines the SQL operator and strips the operator
// suffix from the key. It returns the operator, the key's database column
// mapping, and the modified value (if applicable).
func parseOperatorAndKey(key, value string, jsonMap map[string]string) (operator, dbColumn string, modifiedValue string, err error) {
	operator = "="
	modifiedValue = value

	if strings.HasSuffix(key, "_ne") {
		operator = "!="
		key = strings.TrimSuffix(key, "_ne")

	} else if strings.HasSuffix(key, "_lt") {
		operator = "<"
		key = strings.TrimSuffix(key, "_lt")

	} else if strings.HasSuffix(key, "_gt") {
		operator = ">"
		key = strings.TrimSuffix(key, "_gt")

	} else if strings.HasSuffix(key, "_lte") {
		operator = "<="
		key = strings.TrimSuffix(key, "_lte")

	} else if strings.HasSuffix(key, "_gte") {
		operator = ">="
		key = strings.TrimSuffix(key, "_gte")

	} else if strings.HasSuffix(key, "_contains") {
		operator = "LIKE"
		key = strings.TrimSuffix(key, "_contains")
		modifiedValue = "%" + value + "%"

	} else if strings.HasSuffix(key, "_anyOf") {
		operator = "IN"
		key = strings.TrimSuffix(key, "_anyOf")
	}

	if err := validateQueryParam(key, jsonMap); err != nil {
		return "", "", "", err
	}

	// Map the JSON tag to the DB column name and return that for the query
	dbColumn = jsonMap[key]

	return operator, dbColumn, modifiedValue, nil
}

// handleInOperator builds a WHERE clause part, from a list of comma-separated
// values, for the IN operator. It is a helper for buildWhereClause. It returns
// the still-under-construction WHERE clause parts, the values to be ultimately
// passed alongside the query, and the current placeholder count.
func handleInOperator(key, value string, phIndex int, whereClauseParts []string, values []interface{}, jsonMap map[string]string) ([]string, []interface{}, int, error) {
	anyOfValuesList := strings.Split(value, ",")
	placeholders := []string{}

	for _, v := range anyOfValuesList {
		placeholders = append(placeholders, fmt.Sprintf("$%d", phIndex))
		formattedVal := convertValueIfNumeric(v)
		values = append(values, formattedVal)
		phIndex++
	}

	key = strings.TrimSuffix(key, "_anyOf")
	if err := validateQueryParam(key, jsonMap); err != nil {
		return nil, nil, 0, err
	}

	dbColumn := jsonMap[key]
	whereClauseParts = append(whereClauseParts, fmt.Sprintf("%s IN (%s)", dbColumn, strings.Join(placeholders, ",")))
	return whereClauseParts, values, phIndex, nil
}

// buildSortingClause defaults to chronological order; a schedule listing
// without an explicit sort shows the events as they occur.
func buildSortingClause(queryParams map[string]string, jsonMap map[string]string) (string, string, error) {
	sort := queryParams["sortBy"]
	order := "ASC"
	if strings.HasPrefix(sort, "-") {
		order = "DESC"
		sort = strings.TrimPrefix(sort, "-")
	}
	if sort == "" {
		sort = "start"
	}

	if err := validateQueryParam(sort, jsonMap); err != nil {
		return "", "", fmt.Errorf("invalid sort value: %v", sort)
	}

	sort = jsonMap[sort]
	return sort, order, nil
}

// buildPaginationClause derives LIMIT and OFFSET from a 1-based page number
// and a per-page preference drawn from the enumerated page sizes.
func buildPaginationClause(queryParams map[string]string) (limit, offset int, err error) {
	limit = DefaultPageSize
	if pp, ok := queryParams["perPage"]; ok {
		limit, err = strconv.Atoi(pp)
		if err != nil {
			return 0, 0, fmt.Errorf("pagination err; perPage must be a number: %v", err)
		}
		if !ValidPageSize(limit) {
			return 0, 0, fmt.Errorf("pagination err; perPage must be one of 10, 20, 50 or 100")
		}
	}

	page := 1
	if p, ok := queryParams["page"]; ok {
		page, err = strconv.Atoi(p)
		if err != nil {
			return 0, 0, fmt.Errorf("pagination err; page must be a number: %v", err)
		}
		if page < 1 {
			return 0, 0, fmt.Errorf("pagination err; page must be 1 or greater")
		}
	}

	offset = (page - 1) * limit
	return limit, offset, nil
}

func convertValueIfNumeric(value string) interface{} {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	} else if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return value
}

func validateQueryParam(key string, jsonMap map[string]string) error {
	if jsonMap[key] == "" {
		return fmt.Errorf("invalid query parameter: %s", key)
	}
	return nil
}
