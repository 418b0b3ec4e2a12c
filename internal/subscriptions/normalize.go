package subscriptions

// Normalize flattens a check response. Subscribed is false unless the
// profile explicitly reports premium.
func Normalize(resp CheckResponse) Status {
	status := Status{
		Tier:   resp.Subscription.SubscriptionTier,
		Type:   resp.Subscription.SubscriptionType,
		EndsAt: resp.Subscription.SubscriptionEnd,
	}
	if resp.Profile.IsPremium != nil {
		status.Subscribed = *resp.Profile.IsPremium
	}
	if inst := resp.Profile.Institution; inst != nil {
		status.Institution = &Institution{Name: inst.Name, Domain: inst.Domain}
	}
	return status
}

// Unsubscribed is the fail-safe status used whenever a check cannot complete.
func Unsubscribed() Status {
	return Status{Subscribed: false}
}
