package domain

// NotificationFilter selects dashboard notifications of one owner and one
// category. Listings are always ordered newest notification first.
type NotificationFilter struct {
	OwnerAddress string
	Category     NotificationCategory
	Viewed       bool
}

// TransactionFilter selects transactions of one owner. Listings are always
// ordered newest first.
type TransactionFilter struct {
	OwnerAddress string
	Viewed       bool
}
