package domain

// KeyPrefix namespaces every claimdex key and index in the store.
const KeyPrefix = "claimdex:"
