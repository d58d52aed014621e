/*
File    : pl0run/icg/errors.go
*/
package icg

import "errors"

// ErrInvalidComparisonOperator is raised if asked to lower a
// ComparisonCondition whose operator is outside {=,#,<,<=,>,>=}. The parser
// can never produce such an AST; this only guards a hand-built tree.
var ErrInvalidComparisonOperator = errors.New("invalid comparison operator")
