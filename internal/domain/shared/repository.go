package shared

import "context"

// TransactionManager runs a function inside a single storage transaction.
// Repository methods invoked with the context passed to fn observe and join
// that transaction, so a reference lookup and the dependent row write commit
// or roll back as one unit.
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
