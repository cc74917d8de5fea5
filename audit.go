/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// appendAudit persists one immutable audit record for a state transition.
// The ID derives from the entity ID and the deterministic tx timestamp; if
// a record from another transaction already sits at that key (two txs on
// the same entity in the same second) the tx ID is appended so the trail
// stays append-only.
func appendAudit(ctx contractapi.TransactionContextInterface, entityID, action, userID, details string) error {
	now, err := txInstant(ctx)
	if err != nil {
		return err
	}

	auditID := fmt.Sprintf("AUDIT_%s_%d", entityID, now.Unix())
	existing, err := ctx.GetStub().GetState(auditID)
	if err != nil {
		return fmt.Errorf("reading %s: %v", auditID, err)
	}
	if len(existing) > 0 {
		auditID = fmt.Sprintf("%s_%s", auditID, ctx.GetStub().GetTxID())
	}

	entry := AuditEntry{
		DocType:     docTypeAudit,
		AuditID:     auditID,
		EntityID:    entityID,
		Action:      action,
		UserID:      userID,
		Details:     details,
		Timestamp:   now.Format(time.RFC3339),
		BlockNumber: ctx.GetStub().GetTxID(),
	}

	return putDoc(ctx, auditID, entry)
}

// GetAuditTrail returns every audit entry recorded for an entity, newest
// first.
func (s *SmartContract) GetAuditTrail(ctx contractapi.TransactionContextInterface, entityID string) (string, error) {
	return queryJSON(ctx, sortedSelector{
		Selector: map[string]interface{}{
			"docType":  docTypeAudit,
			"entityId": entityID,
		},
		Sort: []map[string]string{{"timestamp": "desc"}},
	})
}
