package sqs

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

const (
	groupId = "MatchmakingTicketQueue"

	stringDataType = "String"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	ConnectWithSession(awsSession *session.Session)
	GetSession() *session.Session
	Send(queueUrl string, message string, attributes map[string]string, dedupId string) error
}

type Client struct {
	cfg       *aws.Config
	sqsClient sqsiface.SQSAPI
	session   *session.Session
}

func New() *Client {
	cfg := aws.NewConfig()
	return &Client{
		cfg: cfg,
	}
}

func (c *Client) Connect() error {
	awsSession, err := session.NewSession(c.cfg)
	if err != nil {
		return err
	}
	c.ConnectWithSession(awsSession)
	return nil
}

func (c *Client) ConnectWithSession(awsSession *session.Session) {
	c.session = awsSession
	c.sqsClient = sqs.New(c.session, c.cfg)
}

func (c *Client) GetSession() *session.Session {
	return c.session
}

// Send publishes a message with string attributes. The deduplication id keeps
// redeliveries of the same logical request from producing duplicate messages
// on FIFO queues.
func (c *Client) Send(queueUrl string, msg string, attributes map[string]string, dedupId string) error {
	in := &sqs.SendMessageInput{
		QueueUrl:               aws.String(queueUrl),
		MessageBody:            aws.String(msg),
		MessageGroupId:         aws.String(groupId),
		MessageDeduplicationId: aws.String(dedupId),
	}

	if len(attributes) > 0 {
		in.MessageAttributes = make(map[string]*sqs.MessageAttributeValue, len(attributes))
		for key, val := range attributes {
			in.MessageAttributes[key] = &sqs.MessageAttributeValue{
				DataType:    aws.String(stringDataType),
				StringValue: aws.String(val),
			}
		}
	}

	req, _ := c.sqsClient.SendMessageRequest(in)
	return req.Send()
}
