/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pvquery

// Operator is one of the upstream's filter operators.
type Operator string

const (
	OpEq  Operator = "eq"
	OpLt  Operator = "lt"
	OpGt  Operator = "gt"
	OpLte Operator = "lte"
	OpGte Operator = "gte"
	OpIn  Operator = "in"
	OpNe  Operator = "ne"
)

// Filter is one {property_name, operator, property_value} predicate sent
// to the upstream analytics API.
type Filter struct {
	PropertyName  string      `json:"property_name"`
	Operator      Operator    `json:"operator"`
	PropertyValue interface{} `json:"property_value"`
}

func FilterEq(property string, value interface{}) Filter  { return Filter{property, OpEq, value} }
func FilterLt(property string, value interface{}) Filter  { return Filter{property, OpLt, value} }
func FilterGt(property string, value interface{}) Filter  { return Filter{property, OpGt, value} }
func FilterLte(property string, value interface{}) Filter { return Filter{property, OpLte, value} }
func FilterGte(property string, value interface{}) Filter { return Filter{property, OpGte, value} }
func FilterIn(property string, values []interface{}) Filter {
	return Filter{property, OpIn, values}
}
func FilterNe(property string, value interface{}) Filter { return Filter{property, OpNe, value} }
