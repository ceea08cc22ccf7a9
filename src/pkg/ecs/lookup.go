package ecs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	log "github.com/sirupsen/logrus"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
)

var logger *log.Entry = log.New().WithFields(log.Fields{
	"package": "ecs",
})

// ErrNoCurrentImage is returned when the service exists but exposes no
// task definition or container image to resolve a tag from.
var ErrNoCurrentImage = errors.New("no current image for service")

// ImageLookup resolves the image currently running for one environment's
// service. Implementations make a single attempt; retries are the
// embedding pipeline's concern.
type ImageLookup interface {
	LookupCurrentImage(ctx context.Context, env models.Environment, creds models.Credentials, cluster, service string) (models.CurrentImage, error)
}

// Lookup is the ECS-backed ImageLookup: it resolves the service's active
// task definition and reads the first container's image reference.
type Lookup struct{}

// Ensure Lookup implements ImageLookup
var _ ImageLookup = (*Lookup)(nil)

// NewLookup creates an ECS image lookup
func NewLookup() *Lookup {
	return &Lookup{}
}

func (l *Lookup) newClient(creds models.Credentials) *ecs.Client {
	return ecs.New(ecs.Options{
		Region:      creds.Region,
		Credentials: credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
	})
}

// LookupCurrentImage resolves the image currently deployed for
// cluster/service in env using that environment's credentials.
func (l *Lookup) LookupCurrentImage(ctx context.Context, env models.Environment, creds models.Credentials, cluster, service string) (models.CurrentImage, error) {
	logger.WithField("env", env).WithField("cluster", cluster).WithField("service", service).Debug("Looking up current image")

	client := l.newClient(creds)

	svcOut, err := client.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(cluster),
		Services: []string{service},
	})
	if err != nil {
		return models.CurrentImage{}, fmt.Errorf("failed to describe service %s/%s: %w", cluster, service, err)
	}
	if len(svcOut.Services) == 0 || svcOut.Services[0].TaskDefinition == nil {
		return models.CurrentImage{}, fmt.Errorf("%w: %s/%s", ErrNoCurrentImage, cluster, service)
	}

	tdOut, err := client.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: svcOut.Services[0].TaskDefinition,
	})
	if err != nil {
		return models.CurrentImage{}, fmt.Errorf("failed to describe task definition for %s/%s: %w", cluster, service, err)
	}
	if tdOut.TaskDefinition == nil {
		return models.CurrentImage{}, fmt.Errorf("%w: %s/%s", ErrNoCurrentImage, cluster, service)
	}
	defs := tdOut.TaskDefinition.ContainerDefinitions
	if len(defs) == 0 || defs[0].Image == nil {
		return models.CurrentImage{}, fmt.Errorf("%w: %s/%s", ErrNoCurrentImage, cluster, service)
	}

	image := ParseImageRef(*defs[0].Image)
	logger.WithField("env", env).WithField("image", image.Image).WithField("tag", image.Tag).Debug("Resolved current image")
	return image, nil
}

// ParseImageRef splits an image reference into the full reference and its
// tag, the substring after the first ":". A reference without ":" yields
// an empty tag.
func ParseImageRef(ref string) models.CurrentImage {
	img := models.CurrentImage{Image: ref}
	if _, tag, found := strings.Cut(ref, ":"); found {
		img.Tag = tag
	}
	return img
}
