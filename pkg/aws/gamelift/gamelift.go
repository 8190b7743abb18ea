package gamelift

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/gamelift"
	"github.com/aws/aws-sdk-go/service/gamelift/gameliftiface"
)

const (
	EnvRegion = "AWS_REGION"
)

// PlayerLatency is one player's measured latency to one region.
type PlayerLatency struct {
	PlayerId  string
	Region    string
	LatencyMs int64
}

// PlayerSessionRequest reserves a session slot for a player in a placement.
type PlayerSessionRequest struct {
	PlayerId   string
	PlayerData string
}

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	ConnectWithSession(awsSession *session.Session)
	GetSession() *session.Session
	StartMatchmaking(configurationName string, playerId string, teamName string, latencies map[string]int64) (ticketId string, err error)
	DescribeMatchmaking(ticketIds []string) ([]*gamelift.MatchmakingTicket, error)
	StartPlacement(placementId string, queueName string, maxPlayers int64, players []PlayerSessionRequest, latencies []PlayerLatency) error
}

type Client struct {
	cfg           *aws.Config
	matchesClient gameliftiface.GameLiftAPI
	session       *session.Session
}

func New() *Client {
	cfg := aws.NewConfig()
	cfg.WithRegion(os.Getenv(EnvRegion))

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
	c.matchesClient = gamelift.New(c.session, c.cfg)
}

func (c *Client) GetSession() *session.Session {
	return c.session
}

// StartMatchmaking opens a matchmaking ticket for a single player and returns
// the ticket id assigned by GameLift.
func (c *Client) StartMatchmaking(configurationName string, playerId string, teamName string, latencies map[string]int64) (string, error) {
	player := &gamelift.Player{
		PlayerId: aws.String(playerId),
		Team:     aws.String(teamName),
	}
	if len(latencies) > 0 {
		player.LatencyInMs = make(map[string]*int64, len(latencies))
		for region, latencyMs := range latencies {
			player.LatencyInMs[region] = aws.Int64(latencyMs)
		}
	}

	out, err := c.matchesClient.StartMatchmaking(&gamelift.StartMatchmakingInput{
		ConfigurationName: aws.String(configurationName),
		Players:           []*gamelift.Player{player},
	})
	if err != nil {
		return "", err
	}

	return aws.StringValue(out.MatchmakingTicket.TicketId), nil
}

// DescribeMatchmaking fetches current status for up to ten tickets. GameLift
// may return fewer tickets than requested when some have already been
// garbage-collected on its side.
func (c *Client) DescribeMatchmaking(ticketIds []string) ([]*gamelift.MatchmakingTicket, error) {
	out, err := c.matchesClient.DescribeMatchmaking(&gamelift.DescribeMatchmakingInput{
		TicketIds: aws.StringSlice(ticketIds),
	})
	if err != nil {
		return nil, err
	}
	return out.TicketList, nil
}

// StartPlacement requests a game session for a batch of players.
func (c *Client) StartPlacement(placementId string, queueName string, maxPlayers int64, players []PlayerSessionRequest, latencies []PlayerLatency) error {
	in := &gamelift.StartGameSessionPlacementInput{
		PlacementId:               aws.String(placementId),
		GameSessionQueueName:      aws.String(queueName),
		MaximumPlayerSessionCount: aws.Int64(maxPlayers),
	}

	for _, player := range players {
		desired := &gamelift.DesiredPlayerSession{
			PlayerId: aws.String(player.PlayerId),
		}
		if player.PlayerData != "" {
			desired.PlayerData = aws.String(player.PlayerData)
		}
		in.DesiredPlayerSessions = append(in.DesiredPlayerSessions, desired)
	}

	for _, latency := range latencies {
		in.PlayerLatencies = append(in.PlayerLatencies, &gamelift.PlayerLatency{
			PlayerId:              aws.String(latency.PlayerId),
			RegionIdentifier:      aws.String(latency.Region),
			LatencyInMilliseconds: aws.Float64(float64(latency.LatencyMs)),
		})
	}

	_, err := c.matchesClient.StartGameSessionPlacement(in)
	return err
}
