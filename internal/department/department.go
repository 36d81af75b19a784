package department

import (
	departmentDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/department"
)

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:   d.ID,
		Name: d.Name,
	}
}

func FromDataModelSlice(rows []*departmentDatamodel.Department) []*Department {
	result := make([]*Department, len(rows))
	for i, d := range rows {
		result[i] = FromDataModel(d)
	}
	return result
}
