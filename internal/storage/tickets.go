package storage

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"game-backend/internal/matchmaking"
)

// ErrPreconditionFailed means a conditional write lost the race: another
// writer already moved the ticket out of the expected status. Callers treat
// this as resolution already achieved, not as a failure.
var ErrPreconditionFailed = errors.New("ticket status changed by another writer")

// Ticket table attribute names.
const (
	attrPlayerId        = "PlayerId"
	attrStartTime       = "StartTime"
	attrStatus          = "TicketStatus"
	attrLastUpdatedTime = "LastUpdatedTime"
	attrTicketId        = "TicketId"
	attrPlacementId     = "PlacementId"
	attrIpAddress       = "IpAddress"
	attrPort            = "Port"
	attrDnsName         = "DnsName"
	attrGameSessionArn  = "GameSessionArn"
	attrPlayerSessionId = "PlayerSessionId"
)

// Ensure TicketStore implements TicketsIFace
var _ TicketsIFace = (*TicketStore)(nil)

type TicketsIFace interface {
	Latest(playerId string) (*matchmaking.Ticket, error)
	Put(ticket *matchmaking.Ticket) error
	Delete(playerId string, startTime int64) error
	ByTicketId(ticketId string) (*matchmaking.Ticket, error)
	InFlightBefore(status matchmaking.Status, cutoff int64, limit int64) ([]matchmaking.Ticket, error)
	UpdateIfStatus(playerId string, startTime int64, expected matchmaking.Status, update TicketUpdate) error
	AssignPlacement(playerId string, startTime int64, placementId string) error
}

// TicketUpdate describes a conditional mutation of a ticket row. A zero
// Status leaves the status untouched (bookkeeping refresh); a non-nil
// Connection is persisted atomically with the status change.
type TicketUpdate struct {
	Status          matchmaking.Status
	LastUpdatedTime int64
	TicketId        string
	Connection      *matchmaking.ConnectionInfo
}

// TicketStore persists matchmaking requests in a key-value table keyed by
// (PlayerId, StartTime), with a secondary index on TicketId for event
// correlation. All cross-invocation coordination happens through the
// compare-and-set contract of UpdateIfStatus.
type TicketStore struct {
	db            dynamodbiface.DynamoDBAPI
	table         string
	ticketIdIndex string
}

func NewTicketStore(db dynamodbiface.DynamoDBAPI, table string, ticketIdIndex string) *TicketStore {
	return &TicketStore{
		db:            db,
		table:         table,
		ticketIdIndex: ticketIdIndex,
	}
}

// Latest returns the player's most recent ticket by StartTime, or nil when
// the player has no history.
func (s *TicketStore) Latest(playerId string) (*matchmaking.Ticket, error) {
	out, err := s.db.Query(&dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String(attrPlayerId + " = :playerId"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":playerId": {S: aws.String(playerId)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int64(1),
	})
	if err != nil {
		return nil, err
	} else if len(out.Items) == 0 {
		return nil, nil
	}

	ticket := &matchmaking.Ticket{}
	if err := dynamodbattribute.UnmarshalMap(out.Items[0], ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketStore) Put(ticket *matchmaking.Ticket) error {
	item, err := dynamodbattribute.MarshalMap(ticket)
	if err != nil {
		return err
	}

	_, err = s.db.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return err
}

func (s *TicketStore) Delete(playerId string, startTime int64) error {
	_, err := s.db.DeleteItem(&dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       ticketKey(playerId, startTime),
	})
	return err
}

// ByTicketId resolves the ticket owning an external correlation id, or nil
// when the id is unknown (already expired and removed).
func (s *TicketStore) ByTicketId(ticketId string) (*matchmaking.Ticket, error) {
	out, err := s.db.Query(&dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(s.ticketIdIndex),
		KeyConditionExpression: aws.String(attrTicketId + " = :ticketId"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":ticketId": {S: aws.String(ticketId)},
		},
		Limit: aws.Int64(1),
	})
	if err != nil {
		return nil, err
	} else if len(out.Items) == 0 {
		return nil, nil
	}

	ticket := &matchmaking.Ticket{}
	if err := dynamodbattribute.UnmarshalMap(out.Items[0], ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// InFlightBefore scans for tickets still in the given status whose
// LastUpdatedTime is older than cutoff. The limit bounds a single
// reconciliation pass.
func (s *TicketStore) InFlightBefore(status matchmaking.Status, cutoff int64, limit int64) ([]matchmaking.Ticket, error) {
	out, err := s.db.Scan(&dynamodb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("#status = :status AND " + attrLastUpdatedTime + " < :cutoff"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String(attrStatus),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":status": {S: aws.String(status.String())},
			":cutoff": {N: aws.String(strconv.FormatInt(cutoff, 10))},
		},
		Limit: aws.Int64(limit),
	})
	if err != nil {
		return nil, err
	}

	var tickets []matchmaking.Ticket
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// UpdateIfStatus applies the update only while the stored status still equals
// expected. ErrPreconditionFailed is returned when another writer got there
// first.
func (s *TicketStore) UpdateIfStatus(playerId string, startTime int64, expected matchmaking.Status, update TicketUpdate) error {
	names := map[string]*string{
		"#status": aws.String(attrStatus),
	}
	values := map[string]*dynamodb.AttributeValue{
		":expected":    {S: aws.String(expected.String())},
		":lastUpdated": {N: aws.String(strconv.FormatInt(update.LastUpdatedTime, 10))},
	}
	set := []string{attrLastUpdatedTime + " = :lastUpdated"}

	if update.Status != "" {
		set = append(set, "#status = :status")
		values[":status"] = &dynamodb.AttributeValue{S: aws.String(update.Status.String())}
	}
	if update.TicketId != "" {
		set = append(set, attrTicketId+" = :ticketId")
		values[":ticketId"] = &dynamodb.AttributeValue{S: aws.String(update.TicketId)}
	}
	if conn := update.Connection; conn != nil {
		set = append(set,
			attrIpAddress+" = :ipAddress",
			attrPort+" = :port",
			attrDnsName+" = :dnsName",
			attrGameSessionArn+" = :gameSessionArn",
			attrPlayerSessionId+" = :playerSessionId",
		)
		values[":ipAddress"] = &dynamodb.AttributeValue{S: aws.String(conn.IPAddress)}
		values[":port"] = &dynamodb.AttributeValue{S: aws.String(conn.Port)}
		values[":dnsName"] = &dynamodb.AttributeValue{S: aws.String(conn.DNSName)}
		values[":gameSessionArn"] = &dynamodb.AttributeValue{S: aws.String(conn.GameSessionARN)}
		values[":playerSessionId"] = &dynamodb.AttributeValue{S: aws.String(conn.PlayerSessionID)}
	}

	_, err := s.db.UpdateItem(&dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       ticketKey(playerId, startTime),
		UpdateExpression:          aws.String("SET " + strings.Join(set, ", ")),
		ConditionExpression:       aws.String("#status = :expected"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if isConditionalCheckFailed(err) {
		return ErrPreconditionFailed
	}
	return err
}

// AssignPlacement marks a ticket as queued under a placement. The write is
// unconditional: the batch matcher is the only writer between the pending
// insert and the terminal resolution.
func (s *TicketStore) AssignPlacement(playerId string, startTime int64, placementId string) error {
	_, err := s.db.UpdateItem(&dynamodb.UpdateItemInput{
		TableName:        aws.String(s.table),
		Key:              ticketKey(playerId, startTime),
		UpdateExpression: aws.String("SET #status = :status, " + attrPlacementId + " = :placementId"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String(attrStatus),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":status":      {S: aws.String(matchmaking.StatusQueued.String())},
			":placementId": {S: aws.String(placementId)},
		},
	})
	return err
}

func ticketKey(playerId string, startTime int64) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		attrPlayerId:  {S: aws.String(playerId)},
		attrStartTime: {N: aws.String(strconv.FormatInt(startTime, 10))},
	}
}

func isConditionalCheckFailed(err error) bool {
	var awsErr awserr.Error
	return errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}
