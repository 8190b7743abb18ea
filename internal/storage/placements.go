package storage

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"game-backend/internal/matchmaking"
)

const (
	attrPlacementKey = "PlacementId"
)

// Ensure PlacementStore implements PlacementsIFace
var _ PlacementsIFace = (*PlacementStore)(nil)

// Ensure PlacementStore satisfies the read-side lookup used by the in-flight
// check
var _ matchmaking.PlacementGetter = (*PlacementStore)(nil)

type PlacementsIFace interface {
	Get(placementId string) (*matchmaking.Placement, error)
	Put(placement *matchmaking.Placement) error
}

// PlacementStore persists placement outcomes keyed by PlacementId. Rows are
// written whole when a terminal placement event arrives and read back by the
// resolver and the in-flight check.
type PlacementStore struct {
	db    dynamodbiface.DynamoDBAPI
	table string
}

func NewPlacementStore(db dynamodbiface.DynamoDBAPI, table string) *PlacementStore {
	return &PlacementStore{
		db:    db,
		table: table,
	}
}

// Get returns the recorded placement outcome, or nil when no terminal event
// has been received for the id.
func (s *PlacementStore) Get(placementId string) (*matchmaking.Placement, error) {
	out, err := s.db.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			attrPlacementKey: {S: aws.String(placementId)},
		},
	})
	if err != nil {
		return nil, err
	} else if len(out.Item) == 0 {
		return nil, nil
	}

	placement := &matchmaking.Placement{}
	if err := dynamodbattribute.UnmarshalMap(out.Item, placement); err != nil {
		return nil, err
	}
	return placement, nil
}

func (s *PlacementStore) Put(placement *matchmaking.Placement) error {
	item, err := dynamodbattribute.MarshalMap(placement)
	if err != nil {
		return err
	}

	_, err = s.db.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return err
}
