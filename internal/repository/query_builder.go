package repository

import "github.com/doug-martin/goqu/v9"

type QueryBuilder interface {
	BuildConditions(aliases map[string]string) goqu.Ex
}

// Conditions collects equality filters keyed by request field name. Empty
// string values are skipped so unset filters stay unconstrained.
type Conditions struct {
	conditions map[string]interface{}
}

func NewQueryBuilder() *Conditions {
	return &Conditions{
		conditions: make(map[string]interface{}),
	}
}

func (q *Conditions) AddCondition(key string, value interface{}) *Conditions {
	if s, ok := value.(string); ok && s == "" {
		return q
	}
	q.conditions[key] = value
	return q
}

func (q *Conditions) Len() int {
	return len(q.conditions)
}

func (q *Conditions) BuildConditions(aliases map[string]string) goqu.Ex {
	conditions := goqu.Ex{}
	for key, value := range q.conditions {
		if alias, ok := aliases[key]; ok {
			conditions[alias] = value
		} else {
			conditions[key] = value
		}
	}
	return conditions
}
