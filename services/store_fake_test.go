package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeStore implements Store with per-method hooks. Unset hooks behave like
// an empty table. Mutations are recorded so tests can assert on them.
type fakeStore struct {
	getItem               func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	putItem               func(table string, item interface{}) error
	putItemIfNotExists    func(table string, item interface{}) error
	updateItemConditional func(table, update, condition string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	queryItemsWithOptions func(table, keyCondition string) ([]map[string]types.AttributeValue, error)

	deletedKeys            []string
	updateCalls            int
	updateConditionalCalls int
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) GetItem(_ context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if f.getItem != nil {
		return f.getItem(table, key)
	}
	return nil, ErrItemNotFound
}

func (f *fakeStore) PutItem(_ context.Context, table string, item interface{}) error {
	if f.putItem != nil {
		return f.putItem(table, item)
	}
	return nil
}

func (f *fakeStore) PutItemIfNotExists(_ context.Context, table string, item interface{}, _ string) error {
	if f.putItemIfNotExists != nil {
		return f.putItemIfNotExists(table, item)
	}
	return nil
}

func (f *fakeStore) UpdateItem(_ context.Context, _ string, _ string, _ map[string]types.AttributeValue, _ map[string]types.AttributeValue, _ map[string]string) (map[string]types.AttributeValue, error) {
	f.updateCalls++
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeStore) UpdateItemConditional(_ context.Context, table string, update string, condition string, key map[string]types.AttributeValue, _ map[string]types.AttributeValue, _ map[string]string) (map[string]types.AttributeValue, error) {
	f.updateConditionalCalls++
	if f.updateItemConditional != nil {
		return f.updateItemConditional(table, update, condition, key)
	}
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeStore) AddToCounter(_ context.Context, _ string, _ map[string]types.AttributeValue, _ string, _ int) (map[string]types.AttributeValue, error) {
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeStore) DeleteItem(_ context.Context, _ string, key map[string]types.AttributeValue) error {
	if attr, ok := key["userId"].(*types.AttributeValueMemberS); ok {
		f.deletedKeys = append(f.deletedKeys, attr.Value)
	}
	return nil
}

func (f *fakeStore) DeleteItemConditional(_ context.Context, _ string, key map[string]types.AttributeValue, _ string, _ map[string]types.AttributeValue) error {
	if attr, ok := key["userId"].(*types.AttributeValueMemberS); ok {
		f.deletedKeys = append(f.deletedKeys, attr.Value)
	}
	return nil
}

func (f *fakeStore) QueryItems(_ context.Context, _ string, _ string, _ map[string]types.AttributeValue, _ map[string]string, _ int32) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (f *fakeStore) QueryItemsWithIndex(_ context.Context, _ string, _ string, _ string, _ map[string]types.AttributeValue, _ map[string]string, _ int32, _ bool) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (f *fakeStore) QueryItemsWithOptions(_ context.Context, table string, keyCondition string, _ map[string]types.AttributeValue, _ map[string]string, _ int32, _ bool) ([]map[string]types.AttributeValue, error) {
	if f.queryItemsWithOptions != nil {
		return f.queryItemsWithOptions(table, keyCondition)
	}
	return nil, nil
}

func (f *fakeStore) QueryPage(_ context.Context, _ string, _ string, _ string, _ map[string]types.AttributeValue, _ map[string]string, _ int32, _ map[string]types.AttributeValue) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	return nil, nil, nil
}

func (f *fakeStore) BatchWriteItems(_ context.Context, _ string, _ []types.WriteRequest) error {
	return nil
}
