package contextkeys

type RequestId struct{}
