package models

// Todo is a single to-do item owned by one user.
//
// UserID is the DynamoDB partition key and TodoID the range key; the
// per-user listing index orders items by CreatedAt. UserID always comes
// from the verified token subject, never from client input.
type Todo struct {
	TodoID        string  `json:"todoId" dynamodbav:"todoId"`
	UserID        string  `json:"userId" dynamodbav:"userId"`
	Title         string  `json:"title" dynamodbav:"title"`
	DueDate       string  `json:"dueDate,omitempty" dynamodbav:"dueDate"`
	Done          bool    `json:"done" dynamodbav:"done"`
	CreatedAt     string  `json:"createdAt" dynamodbav:"createdAt"`
	AttachmentURL *string `json:"attachmentUrl,omitempty" dynamodbav:"attachmentUrl,omitempty"`
}

// TodoUpdate carries the three mutable fields of an item. Identifier,
// owner and creation timestamp are match keys and never change.
type TodoUpdate struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}
