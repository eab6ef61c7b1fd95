package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/Fersca/YieldMaster/infra/cloudrun"
	"github.com/Fersca/YieldMaster/infra/docker"
	"github.com/Fersca/YieldMaster/infra/firestore"
	"github.com/Fersca/YieldMaster/infra/kms"
	"github.com/Fersca/YieldMaster/infra/provider"
	"github.com/Fersca/YieldMaster/infra/storage"
	"github.com/Fersca/YieldMaster/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firestore database for the cached session document
		if err := firestore.SetupFirestore(ctx, prov); err != nil {
			return err
		}

		// vertex backs the rate, discount and OCR oracles
		if err := vertex.SetupVertex(ctx, prov); err != nil {
			return err
		}

		// kms key that seals the cached Google credential
		if _, err := kms.SetupKMS(ctx, prov); err != nil {
			return err
		}
		keyName, err := kms.CreateKey(ctx, prov, "yieldmaster", "session-credential")
		if err != nil {
			return err
		}

		// bucket archiving scanned statement photos
		bucket, err := storage.CreateCaptureBucket(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		apiSA, err := cloudrun.SetupCloudRun(ctx, prov, keyName, bucket, repo)
		if err != nil {
			return err
		}

		return storage.GrantBucketWrite(ctx, prov, bucket, apiSA)
	})
}
